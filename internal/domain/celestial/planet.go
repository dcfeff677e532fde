package celestial

import (
	"fmt"
	"strings"
)

// Planet field limits.
const (
	MaxSurfaceTypeLen = 19
	MinTemperature    = -400.0
	MaxTemperature    = 400.0
)

// PlanetParams holds the fields shared by the planet kinds.
type PlanetParams struct {
	AverageTemperature float64
	SurfaceType        string
	HasLiquidWater     bool
}

type planet struct {
	surfaceType        string
	averageTemperature float64
	hasLiquidWater     bool
}

func newPlanet(p PlanetParams) planet {
	pl := planet{
		surfaceType:    truncate(p.SurfaceType, MaxSurfaceTypeLen),
		hasLiquidWater: p.HasLiquidWater,
	}
	if validTemperature(p.AverageTemperature) {
		pl.averageTemperature = p.AverageTemperature
	}
	return pl
}

func validTemperature(t float64) bool {
	return t >= MinTemperature && t <= MaxTemperature
}

func (p *planet) SurfaceType() string { return p.surfaceType }

// SetSurfaceType truncates to MaxSurfaceTypeLen rather than rejecting.
func (p *planet) SetSurfaceType(surfaceType string) {
	p.surfaceType = truncate(surfaceType, MaxSurfaceTypeLen)
}

func (p *planet) AverageTemperature() float64 { return p.averageTemperature }

// SetAverageTemperature ignores values outside [MinTemperature, MaxTemperature].
func (p *planet) SetAverageTemperature(t float64) {
	if validTemperature(t) {
		p.averageTemperature = t
	}
}

func (p *planet) HasLiquidWater() bool { return p.hasLiquidWater }

func (p *planet) SetHasLiquidWater(v bool) { p.hasLiquidWater = v }

func (p *planet) describe(b *strings.Builder) {
	fmt.Fprintf(b, "\nSurface Type: %s", p.surfaceType)
	fmt.Fprintf(b, "\nAvg Temp: %g°C", p.averageTemperature)
	fmt.Fprintf(b, "\nHas Liquid Water: %t", p.hasLiquidWater)
}

// GasPlanetParams are the construction fields of a GasPlanet.
type GasPlanetParams struct {
	BodyParams
	PlanetParams
	GasComposition  string
	CoreComposition string
	RadiationLevel  float64
}

// GasPlanet is a planet made mostly of gas.
type GasPlanet struct {
	core
	planet
	gasComposition  string
	coreComposition string
	radiationLevel  float64
}

// NewGasPlanet builds a gas planet with the next id from ids.
func NewGasPlanet(ids *IDSequence, p GasPlanetParams) *GasPlanet {
	return RestoreGasPlanet(ids.Next(), p)
}

// RestoreGasPlanet rebuilds a gas planet with a known id.
func RestoreGasPlanet(id int, p GasPlanetParams) *GasPlanet {
	g := &GasPlanet{
		core:            newCore(id, p.BodyParams),
		planet:          newPlanet(p.PlanetParams),
		gasComposition:  p.GasComposition,
		coreComposition: p.CoreComposition,
	}
	if finite(p.RadiationLevel) {
		g.radiationLevel = p.RadiationLevel
	}
	return g
}

func (g *GasPlanet) Kind() Kind { return KindGasPlanet }

func (g *GasPlanet) Classify() string { return KindGasPlanet.String() }

func (g *GasPlanet) GasComposition() string { return g.gasComposition }

func (g *GasPlanet) SetGasComposition(v string) { g.gasComposition = v }

func (g *GasPlanet) CoreComposition() string { return g.coreComposition }

func (g *GasPlanet) SetCoreComposition(v string) { g.coreComposition = v }

func (g *GasPlanet) RadiationLevel() float64 { return g.radiationLevel }

// SetRadiationLevel ignores NaN and infinite values.
func (g *GasPlanet) SetRadiationLevel(v float64) {
	if finite(v) {
		g.radiationLevel = v
	}
}

func (g *GasPlanet) DisplayInfo() string {
	return fmt.Sprintf("Name: %s, Gas Composition: %s, Core Composition: %s, Radiation Level: %g",
		g.name, g.gasComposition, g.coreComposition, g.radiationLevel)
}

func (g *GasPlanet) String() string {
	var b strings.Builder
	g.core.describe(&b, KindGasPlanet)
	g.planet.describe(&b)
	fmt.Fprintf(&b, "\nGas Composition: %s", g.gasComposition)
	fmt.Fprintf(&b, "\nCore Composition: %s", g.coreComposition)
	fmt.Fprintf(&b, "\nRadiation Level: %g", g.radiationLevel)
	return b.String()
}

// IcePlanetParams are the construction fields of an IcePlanet.
type IcePlanetParams struct {
	BodyParams
	PlanetParams
	IceComposition string
}

// IcePlanet is a planet made mostly of ices.
type IcePlanet struct {
	core
	planet
	iceComposition string
}

// NewIcePlanet builds an ice planet with the next id from ids.
func NewIcePlanet(ids *IDSequence, p IcePlanetParams) *IcePlanet {
	return RestoreIcePlanet(ids.Next(), p)
}

// RestoreIcePlanet rebuilds an ice planet with a known id.
func RestoreIcePlanet(id int, p IcePlanetParams) *IcePlanet {
	return &IcePlanet{
		core:           newCore(id, p.BodyParams),
		planet:         newPlanet(p.PlanetParams),
		iceComposition: p.IceComposition,
	}
}

func (i *IcePlanet) Kind() Kind { return KindIcePlanet }

func (i *IcePlanet) Classify() string { return KindIcePlanet.String() }

func (i *IcePlanet) IceComposition() string { return i.iceComposition }

func (i *IcePlanet) SetIceComposition(v string) { i.iceComposition = v }

func (i *IcePlanet) DisplayInfo() string {
	return fmt.Sprintf("Name: %s, Ice Composition: %s", i.name, i.iceComposition)
}

func (i *IcePlanet) String() string {
	var b strings.Builder
	i.core.describe(&b, KindIcePlanet)
	i.planet.describe(&b)
	fmt.Fprintf(&b, "\nIce Composition: %s", i.iceComposition)
	return b.String()
}

// DwarfPlanetParams are the construction fields of a DwarfPlanet.
type DwarfPlanetParams struct {
	BodyParams
	PlanetParams
	SurfaceComposition string
}

// DwarfPlanet is a planet that has not cleared its orbit.
type DwarfPlanet struct {
	core
	planet
	surfaceComposition string
}

// NewDwarfPlanet builds a dwarf planet with the next id from ids.
func NewDwarfPlanet(ids *IDSequence, p DwarfPlanetParams) *DwarfPlanet {
	return RestoreDwarfPlanet(ids.Next(), p)
}

// RestoreDwarfPlanet rebuilds a dwarf planet with a known id.
func RestoreDwarfPlanet(id int, p DwarfPlanetParams) *DwarfPlanet {
	return &DwarfPlanet{
		core:               newCore(id, p.BodyParams),
		planet:             newPlanet(p.PlanetParams),
		surfaceComposition: p.SurfaceComposition,
	}
}

func (d *DwarfPlanet) Kind() Kind { return KindDwarfPlanet }

func (d *DwarfPlanet) Classify() string { return KindDwarfPlanet.String() }

func (d *DwarfPlanet) SurfaceComposition() string { return d.surfaceComposition }

func (d *DwarfPlanet) SetSurfaceComposition(v string) { d.surfaceComposition = v }

func (d *DwarfPlanet) DisplayInfo() string {
	return fmt.Sprintf("Name: %s, Surface Composition: %s", d.name, d.surfaceComposition)
}

func (d *DwarfPlanet) String() string {
	var b strings.Builder
	d.core.describe(&b, KindDwarfPlanet)
	d.planet.describe(&b)
	fmt.Fprintf(&b, "\nSurface Composition: %s", d.surfaceComposition)
	return b.String()
}

var (
	_ Body = (*GasPlanet)(nil)
	_ Body = (*IcePlanet)(nil)
	_ Body = (*DwarfPlanet)(nil)
)
