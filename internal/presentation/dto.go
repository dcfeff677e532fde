package presentation

import (
	"strings"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
)

// SystemDTO represents a planetary system for presentation
type SystemDTO struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Star  string `json:"star"`
}

// SystemRef names the system a body belongs to.
type SystemRef struct {
	Name string `json:"name"`
	Star string `json:"star"`
}

// BodyDTO represents a celestial body for presentation
type BodyDTO struct {
	Index          int        `json:"index"`
	ID             int        `json:"id"`
	Kind           string     `json:"kind"`
	Classification string     `json:"classification"`
	Name           string     `json:"name"`
	Mass           float64    `json:"mass"`
	Diameter       float64    `json:"diameter"`
	Gravity        float64    `json:"gravity"`
	System         *SystemRef `json:"system,omitempty"`
	Display        string     `json:"display"`
}

// ListingDTO carries one registry listing. Lines is empty when the
// registry answered with its empty-result message.
type ListingDTO struct {
	Title   string   `json:"title"`
	Lines   []string `json:"lines"`
	Message string   `json:"message,omitempty"`
}

// CountsDTO summarises the catalog.
type CountsDTO struct {
	Bodies       int            `json:"bodies"`
	Stars        int            `json:"stars"`
	GasPlanets   int            `json:"gas_planets"`
	IcePlanets   int            `json:"ice_planets"`
	DwarfPlanets int            `json:"dwarf_planets"`
	Systems      int            `json:"systems"`
	PerSystem    map[string]int `json:"per_system,omitempty"`
}

// FromSystem converts a planetary system to a DTO. A nil system yields nil.
func FromSystem(index int, s *celestial.PlanetarySystem) *SystemDTO {
	if s == nil {
		return nil
	}
	return &SystemDTO{Index: index, Name: s.Name(), Star: s.StarName()}
}

// FromSystems converts systems to DTOs, keeping their registry positions.
func FromSystems(systems []*celestial.PlanetarySystem) []SystemDTO {
	dtos := make([]SystemDTO, 0, len(systems))
	for i, s := range systems {
		if dto := FromSystem(i, s); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// FromBody converts a domain body to a DTO.
func FromBody(index int, b celestial.Body) BodyDTO {
	dto := BodyDTO{
		Index:          index,
		ID:             b.ID(),
		Kind:           b.Kind().Tag(),
		Classification: b.Classify(),
		Name:           b.Name(),
		Mass:           b.Mass(),
		Diameter:       b.Diameter(),
		Gravity:        b.Gravity(),
		Display:        b.DisplayInfo(),
	}
	if s := b.System(); s != nil {
		dto.System = &SystemRef{Name: s.Name(), Star: s.StarName()}
	}
	return dto
}

// FromBodies converts bodies to DTOs, keeping their registry positions.
func FromBodies(bodies []celestial.Body) []BodyDTO {
	dtos := make([]BodyDTO, len(bodies))
	for i, b := range bodies {
		dtos[i] = FromBody(i, b)
	}
	return dtos
}

// NewListing wraps a registry listing. Listings without the "<index>: "
// prefix on their first line are empty-result messages.
func NewListing(title, text string) ListingDTO {
	dto := ListingDTO{Title: title, Lines: []string{}}
	if !isIndexed(text) {
		dto.Message = text
		return dto
	}
	dto.Lines = strings.Split(text, "\n")
	return dto
}

func isIndexed(text string) bool {
	head, _, ok := strings.Cut(text, ": ")
	if !ok || head == "" {
		return false
	}
	for _, r := range head {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
