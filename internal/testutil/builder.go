// Package testutil builds catalog fixtures for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/registry"
)

// Builder accumulates systems and bodies and adds them to registries in order.
type Builder struct {
	t       *testing.T
	ids     *celestial.IDSequence
	systems []*celestial.PlanetarySystem
	byName  map[string]*celestial.PlanetarySystem
	bodies  []celestial.Body
}

// NewBuilder creates a builder drawing ids from ids.
func NewBuilder(t *testing.T, ids *celestial.IDSequence) *Builder {
	t.Helper()
	return &Builder{t: t, ids: ids, byName: make(map[string]*celestial.PlanetarySystem)}
}

// WithSystem adds a planetary system that bodies can join with InSystem.
func (b *Builder) WithSystem(name, star string) *Builder {
	s := celestial.NewPlanetarySystem(name, star)
	b.systems = append(b.systems, s)
	b.byName[name] = s
	return b
}

func (b *Builder) prepare(name string, opts []BodyOption) (bodySpec, celestial.BodyParams) {
	b.t.Helper()
	s := defaultBody(name)
	for _, opt := range opts {
		opt(&s)
	}
	params := celestial.BodyParams{Name: s.name, Mass: s.mass, Diameter: s.diameter}
	if s.system != "" {
		system, ok := b.byName[s.system]
		require.True(b.t, ok, "system %q must be added before bodies that join it", s.system)
		params.System = system
	}
	return s, params
}

func planetParams(s bodySpec) celestial.PlanetParams {
	return celestial.PlanetParams{
		AverageTemperature: s.temperature,
		SurfaceType:        s.surfaceType,
		HasLiquidWater:     s.water,
	}
}

// WithStar adds a star.
func (b *Builder) WithStar(name string, opts ...BodyOption) *Builder {
	b.t.Helper()
	s, params := b.prepare(name, opts)
	b.bodies = append(b.bodies, celestial.NewStar(b.ids, celestial.StarParams{
		BodyParams:    params,
		StellarParams: celestial.StellarParams{SpectralType: s.spectral, Luminosity: s.luminosity},
	}))
	return b
}

// WithGasPlanet adds a gas planet.
func (b *Builder) WithGasPlanet(name string, opts ...BodyOption) *Builder {
	b.t.Helper()
	s, params := b.prepare(name, opts)
	b.bodies = append(b.bodies, celestial.NewGasPlanet(b.ids, celestial.GasPlanetParams{
		BodyParams:      params,
		PlanetParams:    planetParams(s),
		GasComposition:  s.gas,
		CoreComposition: s.core,
		RadiationLevel:  s.radiation,
	}))
	return b
}

// WithIcePlanet adds an ice planet.
func (b *Builder) WithIcePlanet(name string, opts ...BodyOption) *Builder {
	b.t.Helper()
	s, params := b.prepare(name, opts)
	b.bodies = append(b.bodies, celestial.NewIcePlanet(b.ids, celestial.IcePlanetParams{
		BodyParams:     params,
		PlanetParams:   planetParams(s),
		IceComposition: s.ice,
	}))
	return b
}

// WithDwarfPlanet adds a dwarf planet.
func (b *Builder) WithDwarfPlanet(name string, opts ...BodyOption) *Builder {
	b.t.Helper()
	s, params := b.prepare(name, opts)
	b.bodies = append(b.bodies, celestial.NewDwarfPlanet(b.ids, celestial.DwarfPlanetParams{
		BodyParams:         params,
		PlanetParams:       planetParams(s),
		SurfaceComposition: s.surface,
	}))
	return b
}

// Bodies returns the accumulated bodies in insertion order.
func (b *Builder) Bodies() []celestial.Body { return b.bodies }

// Systems returns the accumulated systems in insertion order.
func (b *Builder) Systems() []*celestial.PlanetarySystem { return b.systems }

// System returns a system added with WithSystem, or nil.
func (b *Builder) System(name string) *celestial.PlanetarySystem { return b.byName[name] }

// Build adds everything to the given registries. Either may be nil.
func (b *Builder) Build(bodies *registry.Celestial, systems *registry.Planetary) {
	b.t.Helper()
	if systems != nil {
		for _, s := range b.systems {
			require.True(b.t, systems.Add(s), "adding system %s", s.Name())
		}
	}
	if bodies != nil {
		for _, body := range b.bodies {
			require.True(b.t, bodies.Add(body), "adding body %s", body.Name())
		}
	}
}
