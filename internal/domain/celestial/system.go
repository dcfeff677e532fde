package celestial

import (
	"fmt"
	"strings"
)

const (
	// MaxSystemNameLen is the longest system name kept, in runes.
	MaxSystemNameLen = 50
	// MaxStarNameLen is the longest orbiting star name kept, in runes.
	MaxStarNameLen = 30
)

// PlanetarySystem names a system and the star its bodies orbit.
type PlanetarySystem struct {
	name     string
	starName string
}

// NewPlanetarySystem creates a system, truncating both names to their limits.
func NewPlanetarySystem(name, starName string) *PlanetarySystem {
	return &PlanetarySystem{
		name:     truncate(name, MaxSystemNameLen),
		starName: truncate(starName, MaxStarNameLen),
	}
}

// Name returns the system name.
func (s *PlanetarySystem) Name() string { return s.name }

// StarName returns the name of the orbited star.
func (s *PlanetarySystem) StarName() string { return s.starName }

// SetName replaces the system name. Names longer than MaxSystemNameLen are ignored.
func (s *PlanetarySystem) SetName(name string) {
	if runeLen(name) <= MaxSystemNameLen {
		s.name = name
	}
}

// SetStarName replaces the orbited star name. Names longer than
// MaxStarNameLen are ignored.
func (s *PlanetarySystem) SetStarName(name string) {
	if runeLen(name) <= MaxStarNameLen {
		s.starName = name
	}
}

// Equal reports whether both systems carry exactly the same names.
// Two nil systems are equal; a nil and a non-nil system are not.
func (s *PlanetarySystem) Equal(other *PlanetarySystem) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.name == other.name && s.starName == other.starName
}

func (s *PlanetarySystem) String() string {
	if s == nil {
		return "null"
	}
	return fmt.Sprintf("PlanetarySystem Name: %s, orbits around: %s", s.name, strings.ToUpper(s.starName))
}
