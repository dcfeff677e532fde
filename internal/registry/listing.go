package registry

import (
	"fmt"
	"strings"
)

// Messages returned by listings in place of an empty result.
const (
	MsgNoBodies          = "No Celestial Bodies"
	MsgNoGasPlanets      = "No Gas Planets"
	MsgNoIcePlanets      = "No Ice Planets"
	MsgNoDwarfPlanets    = "No Dwarf Planets"
	MsgNoStars           = "No Stars"
	MsgNoMatch           = "No celestial body matching the criteria"
	MsgInvalidSystem     = "Invalid Planetary System"
	MsgNoSystems         = "No Planetary Systems"
	MsgNoSystemsOfName   = "No Planetary Systems of that name"
	MsgEmptySystemList   = "There are no Planetary Systems in the list."
	msgNoStarsOfSpectral = "No stars for spectral type %c"
	msgNoBodyInSystem    = "No celestial body in the %s"
)

// MsgNoStarsForSpectralType is the empty-result message for a spectral class listing.
func MsgNoStarsForSpectralType(c rune) string {
	return fmt.Sprintf(msgNoStarsOfSpectral, c)
}

// MsgNoBodyInSystem is the empty-result message for a system listing.
func MsgNoBodyInSystem(system fmt.Stringer) string {
	return fmt.Sprintf(msgNoBodyInSystem, system)
}

// listLines renders every kept item as "<index>: <text>", where index is the
// item's current position in items. It returns empty when nothing is kept.
func listLines[T any](items []T, keep func(T) bool, text func(T) string, empty string) string {
	var b strings.Builder
	for i, item := range items {
		if keep != nil && !keep(item) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: %s", i, text(item))
	}
	if b.Len() == 0 {
		return empty
	}
	return b.String()
}

// Threshold selects which side of a bound a threshold filter keeps.
type Threshold int

const (
	// Above keeps values strictly greater than the bound.
	Above Threshold = iota
	// Below keeps values strictly less than the bound.
	Below
	// AtMost keeps values less than or equal to the bound.
	AtMost
)

func (t Threshold) keeps(value, bound float64) bool {
	switch t {
	case Above:
		return value > bound
	case Below:
		return value < bound
	case AtMost:
		return value <= bound
	default:
		return false
	}
}
