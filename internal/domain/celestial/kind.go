package celestial

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a persisted kind tag is not recognised.
var ErrUnknownKind = errors.New("unknown celestial body kind")

// Kind discriminates the concrete body types.
type Kind int

const (
	KindStar Kind = iota
	KindGasPlanet
	KindIcePlanet
	KindDwarfPlanet
)

// Kinds lists every kind in display order.
var Kinds = []Kind{KindStar, KindGasPlanet, KindIcePlanet, KindDwarfPlanet}

// String returns the classification label for the kind.
func (k Kind) String() string {
	switch k {
	case KindStar:
		return "Star"
	case KindGasPlanet:
		return "Gas Planet"
	case KindIcePlanet:
		return "Ice Planet"
	case KindDwarfPlanet:
		return "Dwarf Planet"
	default:
		return "Unknown"
	}
}

// Tag returns the stable identifier used when persisting the kind.
func (k Kind) Tag() string {
	switch k {
	case KindStar:
		return "star"
	case KindGasPlanet:
		return "gas_planet"
	case KindIcePlanet:
		return "ice_planet"
	case KindDwarfPlanet:
		return "dwarf_planet"
	default:
		return ""
	}
}

// ParseKind maps a persisted tag back to its Kind.
func ParseKind(tag string) (Kind, error) {
	for _, k := range Kinds {
		if k.Tag() == tag {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}
