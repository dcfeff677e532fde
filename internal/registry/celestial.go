package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
)

// ErrSystemNotSet is returned by SortByOrbitingStarNameAscending when a body
// has no planetary system to read the star name from.
var ErrSystemNotSet = errors.New("celestial body has no planetary system")

// TopRadiationLimit is how many gas planets TopFiveHighestRadiationGasPlanets returns at most.
const TopRadiationLimit = 5

// Celestial owns the ordered collection of celestial bodies.
type Celestial struct {
	bodies  []celestial.Body
	ids     *celestial.IDSequence
	persist persister[celestial.Body]
}

// NewCelestial creates an empty registry bound to gateway. Ids of loaded
// bodies are observed on ids so new bodies never reuse them.
func NewCelestial(ids *celestial.IDSequence, gateway Gateway[celestial.Body], opts ...Option) *Celestial {
	o := buildOptions(opts)
	return &Celestial{
		bodies: make([]celestial.Body, 0),
		ids:    ids,
		persist: persister[celestial.Body]{
			name:    "celestial",
			gateway: gateway,
			tracer:  o.tracer,
		},
	}
}

// Add appends body. A nil body is rejected.
func (c *Celestial) Add(body celestial.Body) bool {
	if body == nil {
		return false
	}
	c.bodies = append(c.bodies, body)
	return true
}

// DeleteByIndex removes and returns the body at index, or nil when out of range.
func (c *Celestial) DeleteByIndex(index int) celestial.Body {
	if !c.IsValidIndex(index) {
		return nil
	}
	body := c.bodies[index]
	c.bodies = append(c.bodies[:index], c.bodies[index+1:]...)
	return body
}

// DeleteByID removes and returns the first body with id, or nil.
func (c *Celestial) DeleteByID(id int) celestial.Body {
	return c.DeleteByIndex(c.IndexOfID(id))
}

// ByIndex returns the body at index, or nil when out of range.
func (c *Celestial) ByIndex(index int) celestial.Body {
	if !c.IsValidIndex(index) {
		return nil
	}
	return c.bodies[index]
}

// ByID returns the first body with id, or nil.
func (c *Celestial) ByID(id int) celestial.Body {
	return c.ByIndex(c.IndexOfID(id))
}

// Update replaces the first body whose id matches and whose kind equals the
// kind of body. A body can never be updated into a different kind.
func (c *Celestial) Update(id int, body celestial.Body) bool {
	if body == nil {
		return false
	}
	for i, existing := range c.bodies {
		if existing.ID() == id && existing.Kind() == body.Kind() {
			c.bodies[i] = body
			return true
		}
	}
	return false
}

// IndexOfID returns the index of the first body with id, or -1.
func (c *Celestial) IndexOfID(id int) int {
	for i, body := range c.bodies {
		if body.ID() == id {
			return i
		}
	}
	return -1
}

// IsValidIndex reports whether index addresses a body.
func (c *Celestial) IsValidIndex(index int) bool {
	return index >= 0 && index < len(c.bodies)
}

// Bodies returns the bodies in their current order. The slice is a copy.
func (c *Celestial) Bodies() []celestial.Body {
	out := make([]celestial.Body, len(c.bodies))
	copy(out, c.bodies)
	return out
}

// Target returns where the registry persists to.
func (c *Celestial) Target() string {
	return c.persist.target()
}

func ofKind(kind celestial.Kind) func(celestial.Body) bool {
	return func(b celestial.Body) bool { return b.Kind() == kind }
}

func displayInfo(b celestial.Body) string { return b.DisplayInfo() }

func (c *Celestial) list(keep func(celestial.Body) bool, empty string) string {
	return listLines(c.bodies, keep, displayInfo, empty)
}

// ListAll lists every body.
func (c *Celestial) ListAll() string {
	return c.list(nil, MsgNoBodies)
}

// ListGasPlanets lists every gas planet.
func (c *Celestial) ListGasPlanets() string {
	return c.list(ofKind(celestial.KindGasPlanet), MsgNoGasPlanets)
}

// ListIcePlanets lists every ice planet.
func (c *Celestial) ListIcePlanets() string {
	return c.list(ofKind(celestial.KindIcePlanet), MsgNoIcePlanets)
}

// ListDwarfPlanets lists every dwarf planet.
func (c *Celestial) ListDwarfPlanets() string {
	return c.list(ofKind(celestial.KindDwarfPlanet), MsgNoDwarfPlanets)
}

// ListStars lists every star.
func (c *Celestial) ListStars() string {
	return c.list(ofKind(celestial.KindStar), MsgNoStars)
}

// ListStarsForSpectralType lists the stars whose spectral class is exactly spectral.
func (c *Celestial) ListStarsForSpectralType(spectral rune) string {
	return c.list(func(b celestial.Body) bool {
		star, ok := b.(*celestial.Star)
		return ok && star.SpectralType() == spectral
	}, MsgNoStarsForSpectralType(spectral))
}

// ListByThreshold lists bodies whose field passes mode against bound.
func (c *Celestial) ListByThreshold(field func(celestial.Body) float64, mode Threshold, bound float64) string {
	return c.list(func(b celestial.Body) bool {
		return mode.keeps(field(b), bound)
	}, MsgNoMatch)
}

// Mass and Diameter select the field a threshold filter compares.
func Mass(b celestial.Body) float64     { return b.Mass() }
func Diameter(b celestial.Body) float64 { return b.Diameter() }

// ListHeavierThan lists bodies with mass strictly greater than mass.
func (c *Celestial) ListHeavierThan(mass float64) string {
	return c.ListByThreshold(Mass, Above, mass)
}

// ListLighterThan lists bodies with mass strictly less than mass.
func (c *Celestial) ListLighterThan(mass float64) string {
	return c.ListByThreshold(Mass, Below, mass)
}

// ListSmallerThan lists bodies with diameter less than or equal to diameter.
// The bound is inclusive, unlike ListHeavierThan.
func (c *Celestial) ListSmallerThan(diameter float64) string {
	return c.ListByThreshold(Diameter, AtMost, diameter)
}

// ListLargerThan lists bodies with diameter strictly greater than diameter.
func (c *Celestial) ListLargerThan(diameter float64) string {
	return c.ListByThreshold(Diameter, Above, diameter)
}

// ListForSystem lists bodies whose system equals system. A nil system yields
// MsgInvalidSystem.
func (c *Celestial) ListForSystem(system *celestial.PlanetarySystem) string {
	if system == nil {
		return MsgInvalidSystem
	}
	return c.list(func(b celestial.Body) bool {
		return HasSystem(b, system)
	}, MsgNoBodyInSystem(system))
}

// HasSystem reports whether body belongs to a system equal to system.
// It is false when either argument is nil.
func HasSystem(body celestial.Body, system *celestial.PlanetarySystem) bool {
	if body == nil || system == nil || body.System() == nil {
		return false
	}
	return system.Equal(body.System())
}

// Count returns the number of bodies.
func (c *Celestial) Count() int {
	return len(c.bodies)
}

// CountKind returns the number of bodies of kind.
func (c *Celestial) CountKind(kind celestial.Kind) int {
	n := 0
	for _, b := range c.bodies {
		if b.Kind() == kind {
			n++
		}
	}
	return n
}

func (c *Celestial) CountStars() int        { return c.CountKind(celestial.KindStar) }
func (c *Celestial) CountGasPlanets() int   { return c.CountKind(celestial.KindGasPlanet) }
func (c *Celestial) CountIcePlanets() int   { return c.CountKind(celestial.KindIcePlanet) }
func (c *Celestial) CountDwarfPlanets() int { return c.CountKind(celestial.KindDwarfPlanet) }

// CountForSystem returns how many bodies belong to system, 0 for a nil system.
func (c *Celestial) CountForSystem(system *celestial.PlanetarySystem) int {
	n := 0
	for _, b := range c.bodies {
		if HasSystem(b, system) {
			n++
		}
	}
	return n
}

// SortByMassDescending orders bodies heaviest first.
func (c *Celestial) SortByMassDescending() {
	selectionSort(c.bodies, func(a, b celestial.Body) bool { return a.Mass() > b.Mass() })
}

// SortByDiameterAscending orders bodies smallest first.
func (c *Celestial) SortByDiameterAscending() {
	selectionSort(c.bodies, func(a, b celestial.Body) bool { return a.Diameter() < b.Diameter() })
}

// SortByNameAscending orders bodies by ordinal name comparison.
func (c *Celestial) SortByNameAscending() {
	selectionSort(c.bodies, func(a, b celestial.Body) bool { return a.Name() < b.Name() })
}

// SortByOrbitingStarNameAscending orders bodies by the star name of their
// system. Every body must have a system; if one does not, the order is left
// unchanged and ErrSystemNotSet is returned.
func (c *Celestial) SortByOrbitingStarNameAscending() error {
	for _, b := range c.bodies {
		if b.System() == nil {
			return fmt.Errorf("sort by orbiting star: body %d: %w", b.ID(), ErrSystemNotSet)
		}
	}
	selectionSort(c.bodies, func(a, b celestial.Body) bool {
		return a.System().StarName() < b.System().StarName()
	})
	return nil
}

// TopFiveHighestRadiationGasPlanets returns up to TopRadiationLimit gas
// planets, highest radiation first. The registry order is not changed.
func (c *Celestial) TopFiveHighestRadiationGasPlanets() []*celestial.GasPlanet {
	gas := make([]*celestial.GasPlanet, 0)
	for _, b := range c.bodies {
		if g, ok := b.(*celestial.GasPlanet); ok {
			gas = append(gas, g)
		}
	}
	selectionSort(gas, func(a, b *celestial.GasPlanet) bool { return a.RadiationLevel() > b.RadiationLevel() })
	return gas[:min(TopRadiationLimit, len(gas))]
}

// SearchByName returns the first body whose name matches case-insensitively, or nil.
func (c *Celestial) SearchByName(name string) celestial.Body {
	for _, b := range c.bodies {
		if strings.EqualFold(b.Name(), name) {
			return b
		}
	}
	return nil
}

// SearchByMass returns the first body with exactly mass, or nil.
func (c *Celestial) SearchByMass(mass float64) celestial.Body {
	for _, b := range c.bodies {
		if b.Mass() == mass {
			return b
		}
	}
	return nil
}

// SearchByDiameter returns the first body with exactly diameter, or nil.
func (c *Celestial) SearchByDiameter(diameter float64) celestial.Body {
	for _, b := range c.bodies {
		if b.Diameter() == diameter {
			return b
		}
	}
	return nil
}

// Relink points each body's system at the instance lookup returns for it, so
// bodies share the systems held elsewhere instead of equal copies. Bodies for
// which lookup returns nil keep their current system. It returns how many
// bodies were relinked.
func (c *Celestial) Relink(lookup func(*celestial.PlanetarySystem) *celestial.PlanetarySystem) int {
	n := 0
	for _, b := range c.bodies {
		if b.System() == nil {
			continue
		}
		if shared := lookup(b.System()); shared != nil && shared != b.System() {
			b.SetSystem(shared)
			n++
		}
	}
	return n
}

// Save writes every body through the gateway. Failures are logged and
// reported as false.
func (c *Celestial) Save(ctx context.Context) bool {
	nextID := 0
	if c.ids != nil {
		nextID = c.ids.Peek()
	}
	return c.persist.save(ctx, c.bodies, nextID)
}

// Load replaces the collection with the stored bodies. On LoadNoData the
// collection is emptied; on LoadFailed it is left unchanged.
func (c *Celestial) Load(ctx context.Context) LoadResult {
	bodies, nextID, result := c.persist.load(ctx)
	switch result {
	case LoadOK:
		c.bodies = bodies
		if c.bodies == nil {
			c.bodies = make([]celestial.Body, 0)
		}
		if c.ids != nil {
			for _, b := range c.bodies {
				c.ids.Observe(b.ID())
			}
			if nextID > 0 {
				c.ids.Observe(nextID - 1)
			}
		}
	case LoadNoData:
		c.bodies = make([]celestial.Body, 0)
	}
	return result
}
