package registry

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
)

// memGateway is an in-memory Gateway for registry tests.
type memGateway[T any] struct {
	items   []T
	stored  bool
	saveErr error
	loadErr error
}

func (g *memGateway[T]) Save(_ context.Context, items []T) error {
	if g.saveErr != nil {
		return g.saveErr
	}
	g.items = append([]T(nil), items...)
	g.stored = true
	return nil
}

func (g *memGateway[T]) Load(_ context.Context) ([]T, error) {
	if g.loadErr != nil {
		return nil, g.loadErr
	}
	if !g.stored {
		return nil, ErrNoData
	}
	return append([]T(nil), g.items...), nil
}

func (g *memGateway[T]) Target() string { return "memory" }

// mockSequencedGateway is a testify mock of a body gateway that also stores
// the next unused id.
type mockSequencedGateway struct {
	mock.Mock
}

func (g *mockSequencedGateway) Save(ctx context.Context, items []celestial.Body) error {
	args := g.Called(ctx, items)
	return args.Error(0)
}

func (g *mockSequencedGateway) Load(ctx context.Context) ([]celestial.Body, error) {
	args := g.Called(ctx)
	bodies, _ := args.Get(0).([]celestial.Body)
	return bodies, args.Error(1)
}

func (g *mockSequencedGateway) SaveWithNextID(ctx context.Context, items []celestial.Body, nextID int) error {
	args := g.Called(ctx, items, nextID)
	return args.Error(0)
}

func (g *mockSequencedGateway) LoadWithNextID(ctx context.Context) ([]celestial.Body, int, error) {
	args := g.Called(ctx)
	bodies, _ := args.Get(0).([]celestial.Body)
	return bodies, args.Int(1), args.Error(2)
}

func (g *mockSequencedGateway) Target() string { return "mock" }

var _ SequencedGateway[celestial.Body] = (*mockSequencedGateway)(nil)

var solar = celestial.NewPlanetarySystem("Solar", "Sun")

func star(ids *celestial.IDSequence, name string, mass, diameter float64, spectral rune) *celestial.Star {
	return celestial.NewStar(ids, celestial.StarParams{
		BodyParams:    celestial.BodyParams{Name: name, Mass: mass, Diameter: diameter, System: solar},
		StellarParams: celestial.StellarParams{SpectralType: spectral, Luminosity: 5000},
	})
}

func gas(ids *celestial.IDSequence, name string, mass, diameter, radiation float64) *celestial.GasPlanet {
	return celestial.NewGasPlanet(ids, celestial.GasPlanetParams{
		BodyParams:      celestial.BodyParams{Name: name, Mass: mass, Diameter: diameter, System: solar},
		PlanetParams:    celestial.PlanetParams{AverageTemperature: -110, SurfaceType: "gaseous"},
		GasComposition:  "Hydrogen",
		CoreComposition: "Rock",
		RadiationLevel:  radiation,
	})
}

func ice(ids *celestial.IDSequence, name string, mass, diameter float64) *celestial.IcePlanet {
	return celestial.NewIcePlanet(ids, celestial.IcePlanetParams{
		BodyParams:     celestial.BodyParams{Name: name, Mass: mass, Diameter: diameter, System: solar},
		IceComposition: "Methane",
	})
}

func dwarf(ids *celestial.IDSequence, name string, mass, diameter float64) *celestial.DwarfPlanet {
	return celestial.NewDwarfPlanet(ids, celestial.DwarfPlanetParams{
		BodyParams:         celestial.BodyParams{Name: name, Mass: mass, Diameter: diameter, System: solar},
		SurfaceComposition: "Nitrogen ice",
	})
}

func newTestCelestial() (*Celestial, *celestial.IDSequence, *memGateway[celestial.Body]) {
	ids := celestial.NewIDSequence()
	gw := &memGateway[celestial.Body]{}
	return NewCelestial(ids, gw), ids, gw
}
