// Package record defines the flat persistence shape of catalog entities and
// converts between it and the domain model. Every storage backend reads and
// writes these records, so concrete kinds survive a round trip the same way
// in every format.
package record

import (
	"fmt"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
)

// SystemRecord is a stored planetary system.
type SystemRecord struct {
	Name string `json:"name" yaml:"name"`
	Star string `json:"star" yaml:"star"`
}

// BodyRecord is a stored celestial body. Kind selects which of the optional
// fields are meaningful.
type BodyRecord struct {
	Kind     string        `json:"kind" yaml:"kind"`
	ID       int           `json:"id" yaml:"id"`
	Name     string        `json:"name" yaml:"name"`
	Mass     float64       `json:"mass" yaml:"mass"`
	Diameter float64       `json:"diameter" yaml:"diameter"`
	System   *SystemRecord `json:"system,omitempty" yaml:"system,omitempty"`

	// Planet kinds
	SurfaceType        *string  `json:"surface_type,omitempty" yaml:"surface_type,omitempty"`
	AverageTemperature *float64 `json:"average_temperature,omitempty" yaml:"average_temperature,omitempty"`
	HasLiquidWater     *bool    `json:"has_liquid_water,omitempty" yaml:"has_liquid_water,omitempty"`

	// Gas planet
	GasComposition  *string  `json:"gas_composition,omitempty" yaml:"gas_composition,omitempty"`
	CoreComposition *string  `json:"core_composition,omitempty" yaml:"core_composition,omitempty"`
	RadiationLevel  *float64 `json:"radiation_level,omitempty" yaml:"radiation_level,omitempty"`

	// Ice planet
	IceComposition *string `json:"ice_composition,omitempty" yaml:"ice_composition,omitempty"`

	// Dwarf planet
	SurfaceComposition *string `json:"surface_composition,omitempty" yaml:"surface_composition,omitempty"`

	// Star
	SpectralType *string  `json:"spectral_type,omitempty" yaml:"spectral_type,omitempty"`
	Luminosity   *float64 `json:"luminosity,omitempty" yaml:"luminosity,omitempty"`
}

// planetLike is satisfied by every planet kind through the embedded planet state.
type planetLike interface {
	SurfaceType() string
	AverageTemperature() float64
	HasLiquidWater() bool
}

// FromSystem converts a system to its record. A nil system yields nil.
func FromSystem(s *celestial.PlanetarySystem) *SystemRecord {
	if s == nil {
		return nil
	}
	return &SystemRecord{Name: s.Name(), Star: s.StarName()}
}

// FromBody converts a body to its record.
func FromBody(b celestial.Body) (BodyRecord, error) {
	r := BodyRecord{
		Kind:     b.Kind().Tag(),
		ID:       b.ID(),
		Name:     b.Name(),
		Mass:     b.Mass(),
		Diameter: b.Diameter(),
		System:   FromSystem(b.System()),
	}

	if p, ok := b.(planetLike); ok {
		r.SurfaceType = ptr(p.SurfaceType())
		r.AverageTemperature = ptr(p.AverageTemperature())
		r.HasLiquidWater = ptr(p.HasLiquidWater())
	}

	switch v := b.(type) {
	case *celestial.Star:
		r.SpectralType = ptr(string(v.SpectralType()))
		r.Luminosity = ptr(v.Luminosity())
	case *celestial.GasPlanet:
		r.GasComposition = ptr(v.GasComposition())
		r.CoreComposition = ptr(v.CoreComposition())
		r.RadiationLevel = ptr(v.RadiationLevel())
	case *celestial.IcePlanet:
		r.IceComposition = ptr(v.IceComposition())
	case *celestial.DwarfPlanet:
		r.SurfaceComposition = ptr(v.SurfaceComposition())
	default:
		return BodyRecord{}, fmt.Errorf("body %d: %w: %T", b.ID(), celestial.ErrUnknownKind, b)
	}
	return r, nil
}

// FromBodies converts every body, failing on the first unknown kind.
func FromBodies(bodies []celestial.Body) ([]BodyRecord, error) {
	out := make([]BodyRecord, 0, len(bodies))
	for _, b := range bodies {
		r, err := FromBody(b)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// FromSystems converts every system. Nil entries are skipped.
func FromSystems(systems []*celestial.PlanetarySystem) []SystemRecord {
	out := make([]SystemRecord, 0, len(systems))
	for _, s := range systems {
		if r := FromSystem(s); r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// ToSystems rebuilds systems from records.
func ToSystems(records []SystemRecord) []*celestial.PlanetarySystem {
	out := make([]*celestial.PlanetarySystem, 0, len(records))
	for _, r := range records {
		out = append(out, celestial.NewPlanetarySystem(r.Name, r.Star))
	}
	return out
}

// Decoder rebuilds bodies from records. Within one Decoder, equal system
// records resolve to a single shared *PlanetarySystem, so bodies that shared
// a system before saving share one again after loading.
type Decoder struct {
	systems map[SystemRecord]*celestial.PlanetarySystem
}

// NewDecoder returns a Decoder with an empty system table.
func NewDecoder() *Decoder {
	return &Decoder{systems: make(map[SystemRecord]*celestial.PlanetarySystem)}
}

func (d *Decoder) system(r *SystemRecord) *celestial.PlanetarySystem {
	if r == nil {
		return nil
	}
	if s, ok := d.systems[*r]; ok {
		return s
	}
	s := celestial.NewPlanetarySystem(r.Name, r.Star)
	d.systems[*r] = s
	return s
}

// Body rebuilds one body, keeping its stored id.
func (d *Decoder) Body(r BodyRecord) (celestial.Body, error) {
	kind, err := celestial.ParseKind(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("body %d: %w", r.ID, err)
	}

	base := celestial.BodyParams{
		Name:     r.Name,
		Mass:     r.Mass,
		Diameter: r.Diameter,
		System:   d.system(r.System),
	}
	planet := celestial.PlanetParams{
		AverageTemperature: deref(r.AverageTemperature),
		SurfaceType:        deref(r.SurfaceType),
		HasLiquidWater:     deref(r.HasLiquidWater),
	}

	switch kind {
	case celestial.KindStar:
		var spectral rune
		if s := deref(r.SpectralType); s != "" {
			spectral = []rune(s)[0]
		}
		return celestial.RestoreStar(r.ID, celestial.StarParams{
			BodyParams:    base,
			StellarParams: celestial.StellarParams{SpectralType: spectral, Luminosity: deref(r.Luminosity)},
		}), nil
	case celestial.KindGasPlanet:
		return celestial.RestoreGasPlanet(r.ID, celestial.GasPlanetParams{
			BodyParams:      base,
			PlanetParams:    planet,
			GasComposition:  deref(r.GasComposition),
			CoreComposition: deref(r.CoreComposition),
			RadiationLevel:  deref(r.RadiationLevel),
		}), nil
	case celestial.KindIcePlanet:
		return celestial.RestoreIcePlanet(r.ID, celestial.IcePlanetParams{
			BodyParams:     base,
			PlanetParams:   planet,
			IceComposition: deref(r.IceComposition),
		}), nil
	default:
		return celestial.RestoreDwarfPlanet(r.ID, celestial.DwarfPlanetParams{
			BodyParams:         base,
			PlanetParams:       planet,
			SurfaceComposition: deref(r.SurfaceComposition),
		}), nil
	}
}

// Bodies rebuilds every body, failing on the first bad record.
func (d *Decoder) Bodies(records []BodyRecord) ([]celestial.Body, error) {
	out := make([]celestial.Body, 0, len(records))
	for _, r := range records {
		b, err := d.Body(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ToBodies rebuilds bodies with a fresh Decoder.
func ToBodies(records []BodyRecord) ([]celestial.Body, error) {
	return NewDecoder().Bodies(records)
}

func ptr[T any](v T) *T { return &v }

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
