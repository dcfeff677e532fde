package celestial

import (
	"fmt"
	"strings"
)

// Stellar field limits and construction defaults.
const (
	SpectralClasses     = "OBAFGKM"
	DefaultSpectralType = 'M'
	MinLuminosity       = 1000.0
	MaxLuminosity       = 200000.0
	DefaultLuminosity   = MinLuminosity
)

// StellarParams holds the fields shared by stellar objects.
type StellarParams struct {
	SpectralType rune
	Luminosity   float64
}

type stellar struct {
	spectralType rune
	luminosity   float64
}

func newStellar(p StellarParams) stellar {
	s := stellar{spectralType: DefaultSpectralType, luminosity: DefaultLuminosity}
	if ValidSpectralType(p.SpectralType) {
		s.spectralType = p.SpectralType
	}
	if validLuminosity(p.Luminosity) {
		s.luminosity = p.Luminosity
	}
	return s
}

// ValidSpectralType reports whether c is one of the canonical classes O, B, A, F, G, K or M.
func ValidSpectralType(c rune) bool {
	return c != 0 && strings.ContainsRune(SpectralClasses, c)
}

func validLuminosity(l float64) bool {
	return l >= MinLuminosity && l <= MaxLuminosity
}

func (s *stellar) SpectralType() rune { return s.spectralType }

// SetSpectralType ignores classes outside SpectralClasses.
func (s *stellar) SetSpectralType(c rune) {
	if ValidSpectralType(c) {
		s.spectralType = c
	}
}

func (s *stellar) Luminosity() float64 { return s.luminosity }

// SetLuminosity ignores values outside [MinLuminosity, MaxLuminosity].
func (s *stellar) SetLuminosity(l float64) {
	if validLuminosity(l) {
		s.luminosity = l
	}
}

// StarParams are the construction fields of a Star.
type StarParams struct {
	BodyParams
	StellarParams
}

// Star is a self-luminous stellar object.
type Star struct {
	core
	stellar
}

// NewStar builds a star with the next id from ids.
func NewStar(ids *IDSequence, p StarParams) *Star {
	return RestoreStar(ids.Next(), p)
}

// RestoreStar rebuilds a star with a known id.
func RestoreStar(id int, p StarParams) *Star {
	return &Star{
		core:    newCore(id, p.BodyParams),
		stellar: newStellar(p.StellarParams),
	}
}

func (s *Star) Kind() Kind { return KindStar }

func (s *Star) Classify() string { return KindStar.String() }

func (s *Star) DisplayInfo() string {
	return fmt.Sprintf("Star: %s, Spectral Type: %c, Luminosity: %g", s.name, s.spectralType, s.luminosity)
}

func (s *Star) String() string {
	var b strings.Builder
	s.core.describe(&b, KindStar)
	fmt.Fprintf(&b, "\nSpectral Type: %c", s.spectralType)
	fmt.Fprintf(&b, "\nLuminosity: %g", s.luminosity)
	fmt.Fprintf(&b, "\nGravity: %.3e", s.Gravity())
	return b.String()
}

var _ Body = (*Star)(nil)
