package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/registry"
)

func solarBodies() []celestial.Body {
	ids := celestial.NewIDSequence()
	solar := celestial.NewPlanetarySystem("Solar", "Sun")
	return []celestial.Body{
		celestial.NewStar(ids, celestial.StarParams{
			BodyParams:    celestial.BodyParams{Name: "Sun", Mass: 1.989e30, Diameter: 1.39e6, System: solar},
			StellarParams: celestial.StellarParams{SpectralType: 'G', Luminosity: 3828},
		}),
		celestial.NewDwarfPlanet(ids, celestial.DwarfPlanetParams{
			BodyParams:         celestial.BodyParams{Name: "Ceres", Mass: 9.4e20, Diameter: 940},
			SurfaceComposition: "Clay",
		}),
	}
}

func TestNewListing(t *testing.T) {
	listing := NewListing("Stars", "0: Star: Sun\n3: Star: Vega")
	require.Equal(t, []string{"0: Star: Sun", "3: Star: Vega"}, listing.Lines)
	require.Empty(t, listing.Message)

	empty := NewListing("Stars", registry.MsgNoStars)
	require.Empty(t, empty.Lines)
	require.Equal(t, registry.MsgNoStars, empty.Message)

	// A sentinel that happens to contain ": " is still a message.
	msg := NewListing("Spectral", registry.MsgNoStarsForSpectralType('O'))
	require.Empty(t, msg.Lines)
}

func TestFromBody(t *testing.T) {
	bodies := solarBodies()

	sun := FromBody(0, bodies[0])
	require.Equal(t, celestial.FirstID, sun.ID)
	require.Equal(t, "star", sun.Kind)
	require.Equal(t, "Star", sun.Classification)
	require.Equal(t, bodies[0].DisplayInfo(), sun.Display)
	require.Equal(t, &SystemRef{Name: "Solar", Star: "Sun"}, sun.System)

	ceres := FromBody(1, bodies[1])
	require.Nil(t, ceres.System)
	require.Equal(t, 1, ceres.Index)
}

func TestFromSystems_SkipsNil(t *testing.T) {
	dtos := FromSystems([]*celestial.PlanetarySystem{
		celestial.NewPlanetarySystem("Solar", "Sun"),
		nil,
		celestial.NewPlanetarySystem("Kepler-90", "Kepler-90"),
	})
	require.Len(t, dtos, 2)
	require.Equal(t, 2, dtos[1].Index, "registry position is kept")
}

func TestFormatter_TextListing(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatText)

	require.NoError(t, f.FormatListing(NewListing("Stars", "0: Star: Sun")))
	require.Equal(t, "Stars\n0: Star: Sun\n", buf.String())

	buf.Reset()
	require.NoError(t, f.FormatListing(NewListing("", registry.MsgNoBodies)))
	require.Equal(t, registry.MsgNoBodies+"\n", buf.String())
}

func TestFormatter_JSONListing(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf, FormatJSON)
	require.True(t, f.JSON())

	require.NoError(t, f.FormatListing(NewListing("Stars", registry.MsgNoStars)))

	var got ListingDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, "Stars", got.Title)
	require.Equal(t, registry.MsgNoStars, got.Message)
	require.Empty(t, got.Lines)
}

func TestFormatter_Bodies(t *testing.T) {
	bodies := FromBodies(solarBodies())

	var text bytes.Buffer
	require.NoError(t, NewFormatter(&text, FormatText).FormatBodies("Found", bodies, registry.MsgNoMatch))
	require.Contains(t, text.String(), "0: Star: Sun, Spectral Type: G")
	require.Contains(t, text.String(), "1: Name: Ceres, Surface Composition: Clay")

	var js bytes.Buffer
	require.NoError(t, NewFormatter(&js, FormatJSON).FormatBodies("Found", bodies, registry.MsgNoMatch))
	var got []BodyDTO
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	require.Equal(t, bodies, got)

	text.Reset()
	require.NoError(t, NewFormatter(&text, FormatText).FormatBodies("Found", nil, registry.MsgNoMatch))
	require.Equal(t, "Found\n"+registry.MsgNoMatch+"\n", text.String())
}

func TestFormatter_Body(t *testing.T) {
	body := solarBodies()[0]
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatText).FormatBody(FromBody(0, body), body.String()))

	out := buf.String()
	require.Contains(t, out, "Star #1000")
	require.Contains(t, out, "Name: Sun")
	require.Contains(t, out, "Spectral Type: G")
}

func TestFormatter_Counts(t *testing.T) {
	counts := CountsDTO{Bodies: 2, Stars: 1, DwarfPlanets: 1, Systems: 1, PerSystem: map[string]int{"Solar": 1}}

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatText).FormatCounts(counts, []string{"Solar"}))
	require.Contains(t, buf.String(), "Celestial bodies: 2")
	require.Contains(t, buf.String(), "Dwarf planets: 1")
	require.Contains(t, buf.String(), "  Solar: 1")

	buf.Reset()
	require.NoError(t, NewFormatter(&buf, FormatJSON).FormatCounts(counts, nil))
	var got CountsDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, counts, got)
}

func TestFormatter_Message(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf, FormatText).FormatMessage("Saved"))
	require.Equal(t, "Saved\n", buf.String())

	buf.Reset()
	require.NoError(t, NewFormatter(&buf, FormatJSON).FormatMessage("Saved"))
	require.JSONEq(t, `{"message":"Saved"}`, buf.String())
}
