package registry

import (
	"context"
	"strings"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
)

// Planetary owns the ordered collection of planetary systems, keyed
// case-insensitively by system name.
type Planetary struct {
	systems []*celestial.PlanetarySystem
	persist persister[*celestial.PlanetarySystem]
}

// NewPlanetary creates an empty registry bound to gateway.
func NewPlanetary(gateway Gateway[*celestial.PlanetarySystem], opts ...Option) *Planetary {
	o := buildOptions(opts)
	return &Planetary{
		systems: make([]*celestial.PlanetarySystem, 0),
		persist: persister[*celestial.PlanetarySystem]{
			name:    "planetary",
			gateway: gateway,
			tracer:  o.tracer,
		},
	}
}

// Add appends system unless one with the same name, ignoring case, exists.
func (p *Planetary) Add(system *celestial.PlanetarySystem) bool {
	if system == nil || p.IsValidName(system.Name()) {
		return false
	}
	p.systems = append(p.systems, system)
	return true
}

// ByIndex returns the system at index, or nil when out of range.
func (p *Planetary) ByIndex(index int) *celestial.PlanetarySystem {
	if index < 0 || index >= len(p.systems) {
		return nil
	}
	return p.systems[index]
}

// ByName returns the first system named name, ignoring case, or nil.
func (p *Planetary) ByName(name string) *celestial.PlanetarySystem {
	return p.ByIndex(p.IndexOfName(name))
}

// IndexOfName returns the index of the first system named name, ignoring case, or -1.
func (p *Planetary) IndexOfName(name string) int {
	for i, s := range p.systems {
		if strings.EqualFold(s.Name(), name) {
			return i
		}
	}
	return -1
}

// IsValidName reports whether a system named name, ignoring case, is present.
// True means the name is taken.
func (p *Planetary) IsValidName(name string) bool {
	return p.IndexOfName(name) >= 0
}

// Remove deletes the first system equal to system. It returns false when absent.
func (p *Planetary) Remove(system *celestial.PlanetarySystem) bool {
	for i, s := range p.systems {
		if s.Equal(system) {
			p.systems = append(p.systems[:i], p.systems[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveByName deletes and returns the first system named name, ignoring case, or nil.
func (p *Planetary) RemoveByName(name string) *celestial.PlanetarySystem {
	i := p.IndexOfName(name)
	if i < 0 {
		return nil
	}
	system := p.systems[i]
	p.systems = append(p.systems[:i], p.systems[i+1:]...)
	return system
}

// UpdateStarName sets the orbited star of the system named systemName. It
// returns true when the system exists, even if starName was too long to apply.
func (p *Planetary) UpdateStarName(systemName, starName string) bool {
	system := p.ByName(systemName)
	if system == nil {
		return false
	}
	system.SetStarName(starName)
	return true
}

// Systems returns the systems in their current order. The slice is a copy.
func (p *Planetary) Systems() []*celestial.PlanetarySystem {
	out := make([]*celestial.PlanetarySystem, len(p.systems))
	copy(out, p.systems)
	return out
}

// Count returns the number of systems.
func (p *Planetary) Count() int {
	return len(p.systems)
}

// Target returns where the registry persists to.
func (p *Planetary) Target() string {
	return p.persist.target()
}

func systemText(s *celestial.PlanetarySystem) string { return s.String() }

// ListAll lists every system.
func (p *Planetary) ListAll() string {
	return listLines(p.systems, nil, systemText, MsgNoSystems)
}

// ListByName lists the systems named name, ignoring case.
func (p *Planetary) ListByName(name string) string {
	if len(p.systems) == 0 {
		return MsgEmptySystemList
	}
	return listLines(p.systems, func(s *celestial.PlanetarySystem) bool {
		return strings.EqualFold(s.Name(), name)
	}, systemText, MsgNoSystemsOfName)
}

// SortByName orders systems by ordinal system name.
func (p *Planetary) SortByName() {
	selectionSort(p.systems, func(a, b *celestial.PlanetarySystem) bool { return a.Name() < b.Name() })
}

// SortByStarName orders systems by ordinal orbiting star name.
func (p *Planetary) SortByStarName() {
	selectionSort(p.systems, func(a, b *celestial.PlanetarySystem) bool { return a.StarName() < b.StarName() })
}

// Save writes every system through the gateway. Failures are logged and
// reported as false.
func (p *Planetary) Save(ctx context.Context) bool {
	return p.persist.save(ctx, p.systems, 0)
}

// Load replaces the collection with the stored systems. On LoadNoData the
// collection is emptied; on LoadFailed it is left unchanged.
func (p *Planetary) Load(ctx context.Context) LoadResult {
	systems, _, result := p.persist.load(ctx)
	switch result {
	case LoadOK:
		p.systems = make([]*celestial.PlanetarySystem, 0, len(systems))
		for _, s := range systems {
			if s != nil {
				p.systems = append(p.systems, s)
			}
		}
	case LoadNoData:
		p.systems = make([]*celestial.PlanetarySystem, 0)
	}
	return result
}

// Shared returns the held system equal to system, or nil. It is meant as the
// lookup for Celestial.Relink.
func (p *Planetary) Shared(system *celestial.PlanetarySystem) *celestial.PlanetarySystem {
	for _, s := range p.systems {
		if s.Equal(system) {
			return s
		}
	}
	return nil
}
