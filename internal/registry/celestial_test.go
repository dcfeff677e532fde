package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
)

func TestCelestial_ListAllScenario(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	require.Equal(t, "No Celestial Bodies", reg.ListAll())

	sun := celestial.NewStar(ids, celestial.StarParams{
		BodyParams:    celestial.BodyParams{Name: "Sun", Mass: 1e30, Diameter: 1.4e6, System: solar},
		StellarParams: celestial.StellarParams{SpectralType: 'G', Luminosity: 1.0},
	})
	require.True(t, reg.Add(sun))

	out := reg.ListAll()
	require.Contains(t, out, "Sun")
	require.Contains(t, out, "Spectral Type:")
	require.True(t, strings.HasPrefix(out, "0: "))
}

func TestCelestial_AddThenByIDReturnsSameBody(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	body := gas(ids, "Jupiter", 1.9e27, 139820, 10)

	require.True(t, reg.Add(body))
	require.Same(t, body, reg.ByID(body.ID()))
	require.False(t, reg.Add(nil))
	require.Equal(t, 1, reg.Count())
}

func TestCelestial_ByIndexBounds(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	body := ice(ids, "Neptune", 1e26, 49244)
	reg.Add(body)

	require.Same(t, body, reg.ByIndex(0))
	require.Nil(t, reg.ByIndex(-1))
	require.Nil(t, reg.ByIndex(1))
	require.True(t, reg.IsValidIndex(0))
	require.False(t, reg.IsValidIndex(1))
}

func TestCelestial_DeleteByIndex(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	a := ice(ids, "A", 10, 10)
	b := ice(ids, "B", 10, 10)
	reg.Add(a)
	reg.Add(b)

	require.Nil(t, reg.DeleteByIndex(2))
	require.Equal(t, 2, reg.Count())

	require.Same(t, a, reg.DeleteByIndex(0))
	require.Equal(t, 1, reg.Count())
	require.Same(t, b, reg.ByIndex(0))
}

func TestCelestial_DeleteByID_Property(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		reg, ids, _ := newTestCelestial()
		n := rapid.IntRange(0, 12).Draw(r, "n")
		for i := 0; i < n; i++ {
			reg.Add(dwarf(ids, "Body", 10, 10))
		}

		id := rapid.IntRange(celestial.FirstID-5, celestial.FirstID+n+5).Draw(r, "id")
		before := reg.Count()
		present := reg.IndexOfID(id) >= 0

		removed := reg.DeleteByID(id)
		if present {
			require.NotNil(r, removed)
			require.Equal(r, id, removed.ID())
			require.Equal(r, before-1, reg.Count())
			require.Equal(r, -1, reg.IndexOfID(id))
		} else {
			require.Nil(r, removed)
			require.Equal(r, before, reg.Count())
		}
	})
}

func TestCelestial_IDsNeverReusedAfterDelete(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	first := ice(ids, "First", 10, 10)
	reg.Add(first)
	reg.DeleteByID(first.ID())

	second := ice(ids, "Second", 10, 10)
	require.NotEqual(t, first.ID(), second.ID())
}

func TestCelestial_UpdateIsKindGated(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	jupiter := gas(ids, "Jupiter", 1.9e27, 139820, 10)
	reg.Add(jupiter)

	replacement := celestial.RestoreGasPlanet(jupiter.ID(), celestial.GasPlanetParams{
		BodyParams:     celestial.BodyParams{Name: "Jove", Mass: 2e27, Diameter: 140000},
		RadiationLevel: 20,
	})
	require.True(t, reg.Update(jupiter.ID(), replacement))
	require.Same(t, replacement, reg.ByID(jupiter.ID()))

	wrongKind := celestial.RestoreIcePlanet(jupiter.ID(), celestial.IcePlanetParams{BodyParams: celestial.BodyParams{Name: "Ice"}})
	require.False(t, reg.Update(jupiter.ID(), wrongKind))
	require.Same(t, replacement, reg.ByID(jupiter.ID()))

	require.False(t, reg.Update(9999, replacement))
	require.False(t, reg.Update(jupiter.ID(), nil))
}

func TestCelestial_TypedListings(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	require.Equal(t, MsgNoGasPlanets, reg.ListGasPlanets())
	require.Equal(t, MsgNoIcePlanets, reg.ListIcePlanets())
	require.Equal(t, MsgNoStars, reg.ListStars())
	require.Equal(t, MsgNoDwarfPlanets, reg.ListDwarfPlanets())

	reg.Add(star(ids, "Sun", 1e30, 1.4e6, 'G'))
	reg.Add(gas(ids, "Jupiter", 1.9e27, 139820, 10))
	reg.Add(ice(ids, "Neptune", 1e26, 49244))
	reg.Add(dwarf(ids, "Pluto", 1.3e22, 2376))

	require.Equal(t, "1: Name: Jupiter, Gas Composition: Hydrogen, Core Composition: Rock, Radiation Level: 10", reg.ListGasPlanets())
	require.Equal(t, "2: Name: Neptune, Ice Composition: Methane", reg.ListIcePlanets())
	require.Equal(t, "3: Name: Pluto, Surface Composition: Nitrogen ice", reg.ListDwarfPlanets())
	require.Equal(t, "0: Star: Sun, Spectral Type: G, Luminosity: 5000", reg.ListStars())
	require.Len(t, strings.Split(reg.ListAll(), "\n"), 4)
}

func TestCelestial_ListStarsForSpectralType(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	reg.Add(star(ids, "Sun", 1e30, 1.4e6, 'G'))
	reg.Add(star(ids, "Sirius", 4e30, 2.4e6, 'A'))

	require.Equal(t, "1: Star: Sirius, Spectral Type: A, Luminosity: 5000", reg.ListStarsForSpectralType('A'))
	require.Equal(t, "No stars for spectral type K", reg.ListStarsForSpectralType('K'))
}

func TestCelestial_ThresholdBoundaries(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	reg.Add(ice(ids, "Exact", 100, 50))
	reg.Add(ice(ids, "Big", 200, 80))

	// heavier than is strict
	require.NotContains(t, reg.ListHeavierThan(100), "Exact")
	require.Contains(t, reg.ListHeavierThan(100), "Big")
	require.Equal(t, MsgNoMatch, reg.ListHeavierThan(200))

	// smaller than includes the bound
	require.Contains(t, reg.ListSmallerThan(50), "Exact")
	require.NotContains(t, reg.ListSmallerThan(50), "Big")
	require.Equal(t, MsgNoMatch, reg.ListSmallerThan(49))

	require.Contains(t, reg.ListLighterThan(200), "Exact")
	require.NotContains(t, reg.ListLighterThan(200), "Big")

	require.Contains(t, reg.ListLargerThan(50), "Big")
	require.NotContains(t, reg.ListLargerThan(50), "Exact")
}

func TestCelestial_ListForSystem(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	require.Equal(t, MsgInvalidSystem, reg.ListForSystem(nil))

	reg.Add(ice(ids, "Neptune", 1e26, 49244))
	kepler := celestial.NewPlanetarySystem("Kepler-22", "Kepler-22")
	require.Equal(t, "No celestial body in the PlanetarySystem Name: Kepler-22, orbits around: KEPLER-22", reg.ListForSystem(kepler))

	// matched by value, not identity
	copyOfSolar := celestial.NewPlanetarySystem("Solar", "Sun")
	require.Equal(t, "0: Name: Neptune, Ice Composition: Methane", reg.ListForSystem(copyOfSolar))
	require.Equal(t, 1, reg.CountForSystem(copyOfSolar))
	require.Equal(t, 0, reg.CountForSystem(nil))
}

func TestCelestial_Counts(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	reg.Add(star(ids, "Sun", 1e30, 1.4e6, 'G'))
	reg.Add(gas(ids, "Jupiter", 1.9e27, 139820, 10))
	reg.Add(gas(ids, "Saturn", 5.7e26, 116460, 5))
	reg.Add(ice(ids, "Neptune", 1e26, 49244))

	require.Equal(t, 4, reg.Count())
	require.Equal(t, 1, reg.CountStars())
	require.Equal(t, 2, reg.CountGasPlanets())
	require.Equal(t, 1, reg.CountIcePlanets())
	require.Equal(t, 0, reg.CountDwarfPlanets())
}

func TestCelestial_HasSystem(t *testing.T) {
	ids := celestial.NewIDSequence()
	body := ice(ids, "Neptune", 1e26, 49244)

	require.True(t, HasSystem(body, celestial.NewPlanetarySystem("Solar", "Sun")))
	require.False(t, HasSystem(body, nil))
	require.False(t, HasSystem(nil, solar))

	body.SetSystem(nil)
	require.False(t, HasSystem(body, solar))
}

func TestCelestial_SortByMassDescending_Property(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		reg, ids, _ := newTestCelestial()
		masses := rapid.SliceOf(rapid.SampledFrom([]float64{1, 2, 2, 5, 10, 10, 1e6})).Draw(r, "masses")
		for _, m := range masses {
			reg.Add(dwarf(ids, "Body", m, 10))
		}

		reg.SortByMassDescending()

		bodies := reg.Bodies()
		require.Len(r, bodies, len(masses))
		for i := 1; i < len(bodies); i++ {
			require.GreaterOrEqual(r, bodies[i-1].Mass(), bodies[i].Mass())
		}
	})
}

func TestCelestial_SortByDiameterAndName(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	reg.Add(ice(ids, "charon", 10, 30))
	reg.Add(ice(ids, "Bravo", 10, 10))
	reg.Add(ice(ids, "Alpha", 10, 20))

	reg.SortByDiameterAscending()
	require.Equal(t, []string{"Bravo", "Alpha", "charon"}, names(reg))

	reg.SortByNameAscending()
	require.Equal(t, []string{"Alpha", "Bravo", "charon"}, names(reg), "ordinal compare puts lowercase last")
}

func TestCelestial_SortByOrbitingStarName(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	a := ice(ids, "A", 10, 10)
	a.SetSystem(celestial.NewPlanetarySystem("Vega System", "Vega"))
	b := ice(ids, "B", 10, 10)
	b.SetSystem(celestial.NewPlanetarySystem("Centauri", "Alpha Centauri"))
	reg.Add(a)
	reg.Add(b)

	require.NoError(t, reg.SortByOrbitingStarNameAscending())
	require.Equal(t, []string{"B", "A"}, names(reg))
}

func TestCelestial_SortByOrbitingStarName_UnsetSystemLeavesOrder(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	reg.Add(ice(ids, "Z", 10, 10))
	orphan := ice(ids, "Orphan", 10, 10)
	orphan.SetSystem(nil)
	reg.Add(orphan)
	reg.Add(ice(ids, "A", 10, 10))

	err := reg.SortByOrbitingStarNameAscending()
	require.ErrorIs(t, err, ErrSystemNotSet)
	require.Equal(t, []string{"Z", "Orphan", "A"}, names(reg))
}

func TestCelestial_TopFiveScenario(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	reg.Add(gas(ids, "Low", 1e26, 1e5, 10))
	reg.Add(gas(ids, "High", 1e26, 1e5, 75))

	top := reg.TopFiveHighestRadiationGasPlanets()
	require.Len(t, top, 2)
	require.Equal(t, 75.0, top[0].RadiationLevel())
	require.Equal(t, 10.0, top[1].RadiationLevel())
	require.Equal(t, []string{"Low", "High"}, names(reg), "registry order is untouched")
}

func TestCelestial_TopFiveCapsAtFive(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	for i := 0; i < 8; i++ {
		reg.Add(gas(ids, "Gas", 1e26, 1e5, float64(i)))
	}
	reg.Add(star(ids, "Sun", 1e30, 1.4e6, 'G'))

	top := reg.TopFiveHighestRadiationGasPlanets()
	require.Len(t, top, TopRadiationLimit)
	require.Equal(t, 7.0, top[0].RadiationLevel())
	require.Equal(t, 3.0, top[4].RadiationLevel())

	empty, _, _ := newTestCelestial()
	require.Empty(t, empty.TopFiveHighestRadiationGasPlanets())
}

func TestCelestial_Search(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	sun := star(ids, "Sun", 1e30, 1.4e6, 'G')
	neptune := ice(ids, "Neptune", 1e26, 49244)
	reg.Add(sun)
	reg.Add(neptune)

	require.Same(t, sun, reg.SearchByName("sUN"))
	require.Nil(t, reg.SearchByName("Moon"))
	require.Same(t, neptune, reg.SearchByMass(1e26))
	require.Nil(t, reg.SearchByMass(2))
	require.Same(t, sun, reg.SearchByDiameter(1.4e6))
	require.Nil(t, reg.SearchByDiameter(3))
}

func TestCelestial_Relink(t *testing.T) {
	reg, ids, _ := newTestCelestial()
	body := ice(ids, "Neptune", 1e26, 49244)
	body.SetSystem(celestial.NewPlanetarySystem("Solar", "Sun"))
	reg.Add(body)

	systems := NewPlanetary(&memGateway[*celestial.PlanetarySystem]{})
	shared := celestial.NewPlanetarySystem("Solar", "Sun")
	systems.Add(shared)

	require.Equal(t, 1, reg.Relink(systems.Shared))
	require.Same(t, shared, body.System())

	systems.UpdateStarName("solar", "Sol")
	require.Equal(t, "Sol", body.System().StarName())
}

func TestCelestial_SaveLoadRoundTrip(t *testing.T) {
	reg, ids, gw := newTestCelestial()
	reg.Add(star(ids, "Sun", 1e30, 1.4e6, 'G'))
	reg.Add(gas(ids, "Jupiter", 1.9e27, 139820, 10))
	require.True(t, reg.Save(context.Background()))

	freshIDs := celestial.NewIDSequence()
	fresh := NewCelestial(freshIDs, gw)
	require.Equal(t, LoadOK, fresh.Load(context.Background()))
	require.Equal(t, 2, fresh.Count())
	require.Equal(t, celestial.FirstID+2, freshIDs.Peek(), "loaded ids are observed")
}

func TestCelestial_LoadNoData(t *testing.T) {
	reg, _, _ := newTestCelestial()
	require.Equal(t, LoadNoData, reg.Load(context.Background()))
	require.Equal(t, 0, reg.Count())
	require.Equal(t, MsgNoBodies, reg.ListAll())
}

func TestCelestial_PersistenceFailuresAreContained(t *testing.T) {
	reg, ids, gw := newTestCelestial()
	reg.Add(ice(ids, "Neptune", 1e26, 49244))

	gw.saveErr = errors.New("disk full")
	require.False(t, reg.Save(context.Background()))

	gw.loadErr = errors.New("corrupt")
	require.Equal(t, LoadFailed, reg.Load(context.Background()))
	require.Equal(t, 1, reg.Count(), "prior collection is kept")

	unbound := NewCelestial(ids, nil)
	require.False(t, unbound.Save(context.Background()))
	require.Equal(t, LoadFailed, unbound.Load(context.Background()))
}

func names(reg *Celestial) []string {
	out := make([]string, 0, reg.Count())
	for _, b := range reg.Bodies() {
		out = append(out, b.Name())
	}
	return out
}
