package sqlite

import (
	"github.com/zjrosen/spaceplace/internal/infrastructure/record"
)

// bodyColumns is the list of columns selected for body queries, in scan order.
const bodyColumns = `id, kind, name, mass, diameter, system_name, system_star,
	surface_type, average_temperature, has_liquid_water,
	gas_composition, core_composition, radiation_level,
	ice_composition, surface_composition, spectral_type, luminosity`

// BodyModel represents the database row for the bodies table.
type BodyModel struct {
	ID         int
	Kind       string
	Name       string
	Mass       float64
	Diameter   float64
	SystemName *string // nullable
	SystemStar *string // nullable

	SurfaceType        *string  // nullable
	AverageTemperature *float64 // nullable
	HasLiquidWater     *bool    // nullable

	GasComposition  *string  // nullable
	CoreComposition *string  // nullable
	RadiationLevel  *float64 // nullable

	IceComposition     *string // nullable
	SurfaceComposition *string // nullable

	SpectralType *string  // nullable
	Luminosity   *float64 // nullable
}

// toBodyModel converts a body record to a database model.
func toBodyModel(r record.BodyRecord) BodyModel {
	m := BodyModel{
		ID:                 r.ID,
		Kind:               r.Kind,
		Name:               r.Name,
		Mass:               r.Mass,
		Diameter:           r.Diameter,
		SurfaceType:        r.SurfaceType,
		AverageTemperature: r.AverageTemperature,
		HasLiquidWater:     r.HasLiquidWater,
		GasComposition:     r.GasComposition,
		CoreComposition:    r.CoreComposition,
		RadiationLevel:     r.RadiationLevel,
		IceComposition:     r.IceComposition,
		SurfaceComposition: r.SurfaceComposition,
		SpectralType:       r.SpectralType,
		Luminosity:         r.Luminosity,
	}
	if r.System != nil {
		m.SystemName = &r.System.Name
		m.SystemStar = &r.System.Star
	}
	return m
}

// toRecord converts a database model back to a body record.
func (m BodyModel) toRecord() record.BodyRecord {
	r := record.BodyRecord{
		Kind:               m.Kind,
		ID:                 m.ID,
		Name:               m.Name,
		Mass:               m.Mass,
		Diameter:           m.Diameter,
		SurfaceType:        m.SurfaceType,
		AverageTemperature: m.AverageTemperature,
		HasLiquidWater:     m.HasLiquidWater,
		GasComposition:     m.GasComposition,
		CoreComposition:    m.CoreComposition,
		RadiationLevel:     m.RadiationLevel,
		IceComposition:     m.IceComposition,
		SurfaceComposition: m.SurfaceComposition,
		SpectralType:       m.SpectralType,
		Luminosity:         m.Luminosity,
	}
	if m.SystemName != nil {
		r.System = &record.SystemRecord{Name: *m.SystemName}
		if m.SystemStar != nil {
			r.System.Star = *m.SystemStar
		}
	}
	return r
}

// scanBody scans a row into a BodyModel.
func scanBody(scanner interface{ Scan(...any) error }) (BodyModel, error) {
	var m BodyModel
	err := scanner.Scan(
		&m.ID, &m.Kind, &m.Name, &m.Mass, &m.Diameter, &m.SystemName, &m.SystemStar,
		&m.SurfaceType, &m.AverageTemperature, &m.HasLiquidWater,
		&m.GasComposition, &m.CoreComposition, &m.RadiationLevel,
		&m.IceComposition, &m.SurfaceComposition, &m.SpectralType, &m.Luminosity,
	)
	return m, err
}
