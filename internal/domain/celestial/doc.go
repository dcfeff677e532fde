// Package celestial implements the domain model for the celestial catalog.
//
// This package contains only pure Go code with standard library imports. It has
// no knowledge of persistence, configuration, or presentation.
//
// # Core Types
//
// Body is a sealed interface implemented by exactly four concrete kinds:
// Star, GasPlanet, IcePlanet and DwarfPlanet. Shared state lives in embedded
// structs rather than an inheritance chain, and every kind reports its Kind so
// callers dispatch on a closed enum instead of type names.
//
// PlanetarySystem is a small value-like entity (system name plus orbiting star
// name) that bodies reference. References are shared, not owned, and are
// matched by value equality via Equal.
//
// IDSequence hands out body ids starting at FirstID. It is owned by the
// composition root and passed to constructors explicitly.
//
// # Validation
//
// Constructors normalize invalid input to defaults (name truncated to 30
// runes, mass floor 0.1, diameter floor 0.5, temperature 0 outside
// [-400, 400], spectral class 'M', luminosity 1000). Setters never default:
// an invalid value is ignored and the prior value kept. SetSurfaceType is the
// one setter that truncates instead of ignoring.
package celestial
