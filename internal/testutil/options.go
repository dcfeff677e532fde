package testutil

// bodySpec holds every field a fixture body may set. Fields that do not
// apply to a kind are ignored when the body is built.
type bodySpec struct {
	name     string
	mass     float64
	diameter float64
	system   string

	temperature float64
	surfaceType string
	water       bool

	spectral   rune
	luminosity float64

	gas       string
	core      string
	radiation float64
	ice       string
	surface   string
}

func defaultBody(name string) bodySpec {
	return bodySpec{
		name:       name,
		mass:       1e24,
		diameter:   10000,
		spectral:   'G',
		luminosity: 3828,
	}
}

// BodyOption configures a fixture body.
type BodyOption func(*bodySpec)

// Mass sets the body's mass in kg.
func Mass(m float64) BodyOption {
	return func(s *bodySpec) { s.mass = m }
}

// Diameter sets the body's diameter in km.
func Diameter(d float64) BodyOption {
	return func(s *bodySpec) { s.diameter = d }
}

// InSystem attaches the body to a system previously added with WithSystem.
func InSystem(name string) BodyOption {
	return func(s *bodySpec) { s.system = name }
}

// Temperature sets a planet's average temperature.
func Temperature(t float64) BodyOption {
	return func(s *bodySpec) { s.temperature = t }
}

// SurfaceType sets a planet's surface type.
func SurfaceType(v string) BodyOption {
	return func(s *bodySpec) { s.surfaceType = v }
}

// LiquidWater marks a planet as having liquid water.
func LiquidWater() BodyOption {
	return func(s *bodySpec) { s.water = true }
}

// Spectral sets a star's spectral class.
func Spectral(c rune) BodyOption {
	return func(s *bodySpec) { s.spectral = c }
}

// Luminosity sets a star's luminosity.
func Luminosity(l float64) BodyOption {
	return func(s *bodySpec) { s.luminosity = l }
}

// Gas sets a gas planet's gas and core compositions.
func Gas(gas, core string) BodyOption {
	return func(s *bodySpec) { s.gas, s.core = gas, core }
}

// Radiation sets a gas planet's radiation level.
func Radiation(r float64) BodyOption {
	return func(s *bodySpec) { s.radiation = r }
}

// Ice sets an ice planet's ice composition.
func Ice(v string) BodyOption {
	return func(s *bodySpec) { s.ice = v }
}

// SurfaceComposition sets a dwarf planet's surface composition.
func SurfaceComposition(v string) BodyOption {
	return func(s *bodySpec) { s.surface = v }
}
