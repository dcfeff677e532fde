package filestore

import (
	"context"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/infrastructure/record"
	"github.com/zjrosen/spaceplace/internal/registry"
)

// Document kinds.
const (
	KindBodies  = "bodies"
	KindSystems = "systems"
)

// BodyGateway stores celestial bodies in a JSON or YAML document.
type BodyGateway struct {
	store *store[record.BodyRecord]
}

var _ registry.SequencedGateway[celestial.Body] = (*BodyGateway)(nil)

// NewBodyGateway binds a gateway to path. The format follows the extension.
func NewBodyGateway(path string, opts Options) (*BodyGateway, error) {
	s, err := newStore[record.BodyRecord](path, KindBodies, opts)
	if err != nil {
		return nil, err
	}
	return &BodyGateway{store: s}, nil
}

// Save overwrites the document with bodies and no recorded next id.
func (g *BodyGateway) Save(ctx context.Context, bodies []celestial.Body) error {
	return g.SaveWithNextID(ctx, bodies, 0)
}

// SaveWithNextID overwrites the document with bodies and the next unused id.
func (g *BodyGateway) SaveWithNextID(ctx context.Context, bodies []celestial.Body, nextID int) error {
	records, err := record.FromBodies(bodies)
	if err != nil {
		return err
	}
	_, err = g.store.write(ctx, records, nextID)
	return err
}

// Load rebuilds the stored bodies. Bodies that shared an equal system when
// saved share one system instance after loading.
func (g *BodyGateway) Load(ctx context.Context) ([]celestial.Body, error) {
	bodies, _, err := g.LoadWithNextID(ctx)
	return bodies, err
}

// LoadWithNextID rebuilds the stored bodies and returns the recorded next id,
// or 0 for documents written without one.
func (g *BodyGateway) LoadWithNextID(ctx context.Context) ([]celestial.Body, int, error) {
	doc, err := g.store.read(ctx)
	if err != nil {
		return nil, 0, err
	}
	bodies, err := record.ToBodies(doc.Items)
	if err != nil {
		return nil, 0, err
	}
	return bodies, doc.NextID, nil
}

// Target returns the document path.
func (g *BodyGateway) Target() string { return g.store.path }

// SystemGateway stores planetary systems in a JSON or YAML document.
type SystemGateway struct {
	store *store[record.SystemRecord]
}

var _ registry.Gateway[*celestial.PlanetarySystem] = (*SystemGateway)(nil)

// NewSystemGateway binds a gateway to path. The format follows the extension.
func NewSystemGateway(path string, opts Options) (*SystemGateway, error) {
	s, err := newStore[record.SystemRecord](path, KindSystems, opts)
	if err != nil {
		return nil, err
	}
	return &SystemGateway{store: s}, nil
}

// Save overwrites the document with systems.
func (g *SystemGateway) Save(ctx context.Context, systems []*celestial.PlanetarySystem) error {
	_, err := g.store.write(ctx, record.FromSystems(systems), 0)
	return err
}

// Load rebuilds the stored systems.
func (g *SystemGateway) Load(ctx context.Context) ([]*celestial.PlanetarySystem, error) {
	doc, err := g.store.read(ctx)
	if err != nil {
		return nil, err
	}
	return record.ToSystems(doc.Items), nil
}

// Target returns the document path.
func (g *SystemGateway) Target() string { return g.store.path }
