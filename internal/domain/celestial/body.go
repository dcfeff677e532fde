package celestial

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Gravitational constant in m^3 kg^-1 s^-2.
const G = 6.67430e-11

// Body field limits and construction defaults.
const (
	MaxNameLen      = 30
	MinMass         = 0.1
	MinDiameter     = 0.5
	DefaultMass     = MinMass
	DefaultDiameter = MinDiameter
)

// Body is the capability set shared by every celestial body kind.
// The set of implementations is closed: Star, GasPlanet, IcePlanet and DwarfPlanet.
type Body interface {
	ID() int
	Name() string
	SetName(name string)
	Mass() float64
	SetMass(mass float64)
	Diameter() float64
	SetDiameter(diameter float64)
	System() *PlanetarySystem
	SetSystem(system *PlanetarySystem)

	Kind() Kind
	// DisplayInfo returns a one-line, kind-specific summary.
	DisplayInfo() string
	// Gravity returns surface gravity derived from mass and diameter.
	Gravity() float64
	// Classify returns the fixed classification label of the kind.
	Classify() string
	// String returns the full multi-line description.
	String() string

	sealed()
}

// BodyParams holds the fields every body is constructed with.
type BodyParams struct {
	Name     string
	Mass     float64
	Diameter float64
	System   *PlanetarySystem
}

// core is the state shared by all kinds.
type core struct {
	id       int
	name     string
	mass     float64
	diameter float64
	system   *PlanetarySystem
}

func newCore(id int, p BodyParams) core {
	c := core{
		id:       id,
		name:     truncate(p.Name, MaxNameLen),
		mass:     DefaultMass,
		diameter: DefaultDiameter,
		system:   p.System,
	}
	if validMass(p.Mass) {
		c.mass = p.Mass
	}
	if validDiameter(p.Diameter) {
		c.diameter = p.Diameter
	}
	return c
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validMass(v float64) bool { return v > MinMass && finite(v) }

func validDiameter(v float64) bool { return v > MinDiameter && finite(v) }

func (c *core) sealed() {}

// ID returns the id assigned at construction.
func (c *core) ID() int { return c.id }

func (c *core) Name() string { return c.name }

// SetName ignores names longer than MaxNameLen.
func (c *core) SetName(name string) {
	if runeLen(name) <= MaxNameLen {
		c.name = name
	}
}

func (c *core) Mass() float64 { return c.mass }

// SetMass ignores values not greater than MinMass and infinite values.
func (c *core) SetMass(mass float64) {
	if validMass(mass) {
		c.mass = mass
	}
}

func (c *core) Diameter() float64 { return c.diameter }

// SetDiameter ignores values not greater than MinDiameter and infinite values.
func (c *core) SetDiameter(diameter float64) {
	if validDiameter(diameter) {
		c.diameter = diameter
	}
}

func (c *core) System() *PlanetarySystem { return c.system }

func (c *core) SetSystem(system *PlanetarySystem) { c.system = system }

// Gravity is mass * G / r^2 with r half the diameter.
func (c *core) Gravity() float64 {
	radius := c.diameter / 2
	return c.mass * G / (radius * radius)
}

func (c *core) describe(b *strings.Builder, kind Kind) {
	fmt.Fprintf(b, "Id: %d\n", c.id)
	fmt.Fprintf(b, "Kind: %s\n", kind)
	fmt.Fprintf(b, "Name: %s\n", c.name)
	fmt.Fprintf(b, "Mass: %gkg\n", c.mass)
	fmt.Fprintf(b, "Diameter: %gkm\n", c.diameter)
	fmt.Fprintf(b, "PlanetarySystem: %s", c.system)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
