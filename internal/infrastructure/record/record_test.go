package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
)

func sampleBodies(ids *celestial.IDSequence) []celestial.Body {
	solar := celestial.NewPlanetarySystem("Solar", "Sun")
	return []celestial.Body{
		celestial.NewStar(ids, celestial.StarParams{
			BodyParams:    celestial.BodyParams{Name: "Sun", Mass: 1.989e30, Diameter: 1.39e6, System: solar},
			StellarParams: celestial.StellarParams{SpectralType: 'G', Luminosity: 3828},
		}),
		celestial.NewGasPlanet(ids, celestial.GasPlanetParams{
			BodyParams:      celestial.BodyParams{Name: "Jupiter", Mass: 1.898e27, Diameter: 139820, System: solar},
			PlanetParams:    celestial.PlanetParams{AverageTemperature: -110, SurfaceType: "gaseous", HasLiquidWater: false},
			GasComposition:  "Hydrogen",
			CoreComposition: "Rock",
			RadiationLevel:  75,
		}),
		celestial.NewIcePlanet(ids, celestial.IcePlanetParams{
			BodyParams:     celestial.BodyParams{Name: "Neptune", Mass: 1.024e26, Diameter: 49244, System: solar},
			PlanetParams:   celestial.PlanetParams{AverageTemperature: -200, SurfaceType: "icy", HasLiquidWater: true},
			IceComposition: "Methane",
		}),
		celestial.NewDwarfPlanet(ids, celestial.DwarfPlanetParams{
			BodyParams:         celestial.BodyParams{Name: "Rogue", Mass: 1.3e22, Diameter: 2376},
			PlanetParams:       celestial.PlanetParams{AverageTemperature: -230, SurfaceType: "rocky"},
			SurfaceComposition: "Nitrogen ice",
		}),
	}
}

func TestBodyRoundTrip_PreservesKindAndFields(t *testing.T) {
	bodies := sampleBodies(celestial.NewIDSequence())

	records, err := FromBodies(bodies)
	require.NoError(t, err)
	got, err := ToBodies(records)
	require.NoError(t, err)
	require.Len(t, got, len(bodies))

	for i, want := range bodies {
		require.Equal(t, want.Kind(), got[i].Kind())
		require.Equal(t, want.String(), got[i].String())
		require.Equal(t, want.DisplayInfo(), got[i].DisplayInfo())
	}

	jupiter := got[1].(*celestial.GasPlanet)
	require.Equal(t, 75.0, jupiter.RadiationLevel())
	require.Equal(t, "gaseous", jupiter.SurfaceType())

	neptune := got[2].(*celestial.IcePlanet)
	require.True(t, neptune.HasLiquidWater())
	require.Equal(t, -200.0, neptune.AverageTemperature())

	require.Nil(t, got[3].System())
}

func TestDecoder_InternsEqualSystems(t *testing.T) {
	records, err := FromBodies(sampleBodies(celestial.NewIDSequence()))
	require.NoError(t, err)

	got, err := ToBodies(records)
	require.NoError(t, err)
	require.Same(t, got[0].System(), got[1].System())
	require.Same(t, got[1].System(), got[2].System())
}

func TestDecoder_UnknownKind(t *testing.T) {
	_, err := ToBodies([]BodyRecord{{Kind: "comet", ID: 1000}})
	require.ErrorIs(t, err, celestial.ErrUnknownKind)
}

func TestDecoder_StarWithoutSpectralTypeDefaults(t *testing.T) {
	b, err := NewDecoder().Body(BodyRecord{Kind: "star", ID: 1001, Name: "Dim", Mass: 10, Diameter: 10})
	require.NoError(t, err)

	star := b.(*celestial.Star)
	require.Equal(t, rune(celestial.DefaultSpectralType), star.SpectralType())
	require.Equal(t, celestial.DefaultLuminosity, star.Luminosity())
}

func TestSystemsRoundTrip(t *testing.T) {
	systems := []*celestial.PlanetarySystem{
		celestial.NewPlanetarySystem("Solar", "Sun"),
		nil,
		celestial.NewPlanetarySystem("Kepler", "Kepler-22"),
	}

	records := FromSystems(systems)
	require.Len(t, records, 2)

	got := ToSystems(records)
	require.True(t, got[0].Equal(systems[0]))
	require.True(t, got[1].Equal(systems[2]))
}
