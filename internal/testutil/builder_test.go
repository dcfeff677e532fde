package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/infrastructure/filestore"
	"github.com/zjrosen/spaceplace/internal/registry"
)

func TestBuilder_SolarSystemPreset(t *testing.T) {
	ids := celestial.NewIDSequence()
	b := NewBuilder(t, ids).WithSolarSystem()

	bodies := registry.NewCelestial(ids, nil)
	systems := registry.NewPlanetary(nil)
	b.Build(bodies, systems)

	require.Equal(t, 6, bodies.Count())
	require.Equal(t, 2, systems.Count())
	require.Equal(t, 3, bodies.CountStars())
	require.Equal(t, 1, bodies.CountGasPlanets())
	require.Equal(t, 1, bodies.CountIcePlanets())
	require.Equal(t, 1, bodies.CountDwarfPlanets())
	require.Equal(t, 4, bodies.CountForSystem(b.System("Solar")))
}

func TestBuilder_AssignsSequentialIDs(t *testing.T) {
	ids := celestial.NewIDSequence()
	b := NewBuilder(t, ids).
		WithStar("A").
		WithGasPlanet("B").
		WithIcePlanet("C")

	for i, body := range b.Bodies() {
		require.Equal(t, celestial.FirstID+i, body.ID())
	}
	require.Equal(t, celestial.FirstID+3, ids.Peek())
}

func TestBuilder_BodiesShareSystem(t *testing.T) {
	b := NewBuilder(t, celestial.NewIDSequence()).
		WithSystem("Solar", "Sun").
		WithStar("Sun", InSystem("Solar")).
		WithDwarfPlanet("Ceres", InSystem("Solar"))

	bodies := b.Bodies()
	require.Same(t, b.System("Solar"), bodies[0].System())
	require.Same(t, bodies[0].System(), bodies[1].System())
}

func TestBuilder_OptionsApply(t *testing.T) {
	b := NewBuilder(t, celestial.NewIDSequence()).
		WithGasPlanet("Saturn", Mass(5.683e26), Diameter(116460), Temperature(-140),
			SurfaceType("gaseous"), LiquidWater(), Gas("Hydrogen", "Iron"), Radiation(12)).
		WithStar("Vega", Spectral('A'), Luminosity(40000))

	saturn := b.Bodies()[0].(*celestial.GasPlanet)
	require.Equal(t, 5.683e26, saturn.Mass())
	require.Equal(t, 116460.0, saturn.Diameter())
	require.Equal(t, -140.0, saturn.AverageTemperature())
	require.Equal(t, "gaseous", saturn.SurfaceType())
	require.True(t, saturn.HasLiquidWater())
	require.Equal(t, "Hydrogen", saturn.GasComposition())
	require.Equal(t, "Iron", saturn.CoreComposition())
	require.Equal(t, 12.0, saturn.RadiationLevel())

	vega := b.Bodies()[1].(*celestial.Star)
	require.Equal(t, 'A', vega.SpectralType())
	require.Equal(t, 40000.0, vega.Luminosity())
}

func TestBuilder_Persist(t *testing.T) {
	dir := t.TempDir()
	bodiesGW, err := filestore.NewBodyGateway(filepath.Join(dir, "bodies.json"), filestore.DefaultOptions())
	require.NoError(t, err)
	systemsGW, err := filestore.NewSystemGateway(filepath.Join(dir, "systems.yaml"), filestore.DefaultOptions())
	require.NoError(t, err)

	NewBuilder(t, celestial.NewIDSequence()).WithSolarSystem().Persist(bodiesGW, systemsGW)

	bodies, err := bodiesGW.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, bodies, 6)
	systems, err := systemsGW.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, systems, 2)
}
