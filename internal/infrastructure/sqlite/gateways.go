package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/infrastructure/record"
	"github.com/zjrosen/spaceplace/internal/log"
	"github.com/zjrosen/spaceplace/internal/registry"
)

const (
	collectionBodies  = "bodies"
	collectionSystems = "systems"
)

// BodyGateway stores celestial bodies in the bodies table.
type BodyGateway struct {
	db *DB
}

var _ registry.SequencedGateway[celestial.Body] = (*BodyGateway)(nil)

// NewBodyGateway returns a gateway over db.
func NewBodyGateway(db *DB) *BodyGateway {
	return &BodyGateway{db: db}
}

// Save replaces every stored body with bodies in one transaction.
func (g *BodyGateway) Save(ctx context.Context, bodies []celestial.Body) error {
	return g.SaveWithNextID(ctx, bodies, 0)
}

// SaveWithNextID replaces every stored body and records nextID in the same
// transaction.
func (g *BodyGateway) SaveWithNextID(ctx context.Context, bodies []celestial.Body, nextID int) error {
	records, err := record.FromBodies(bodies)
	if err != nil {
		return err
	}
	db, err := g.db.conn(true)
	if err != nil {
		return err
	}

	snapshot := uuid.NewString()
	err = replace(db, "bodies", collectionBodies, snapshot, time.Now().Unix(), nextID, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO bodies (position, `+bodyColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for i, r := range records {
			m := toBodyModel(r)
			if _, err := stmt.ExecContext(ctx,
				i, m.ID, m.Kind, m.Name, m.Mass, m.Diameter, m.SystemName, m.SystemStar,
				m.SurfaceType, m.AverageTemperature, m.HasLiquidWater,
				m.GasComposition, m.CoreComposition, m.RadiationLevel,
				m.IceComposition, m.SurfaceComposition, m.SpectralType, m.Luminosity,
			); err != nil {
				return fmt.Errorf("failed to insert body %d: %w", m.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Debug(log.CatDB, "Saved bodies", "path", g.db.Path(), "snapshot", snapshot, "count", len(records))
	return nil
}

// Load returns the stored bodies in saved order.
func (g *BodyGateway) Load(ctx context.Context) ([]celestial.Body, error) {
	bodies, _, err := g.LoadWithNextID(ctx)
	return bodies, err
}

// LoadWithNextID returns the stored bodies and the next id recorded with them.
func (g *BodyGateway) LoadWithNextID(ctx context.Context) ([]celestial.Body, int, error) {
	db, err := g.db.conn(false)
	if err != nil {
		return nil, 0, err
	}
	saved, nextID, err := snapshotOf(db, collectionBodies)
	if err != nil {
		return nil, 0, err
	}
	if !saved {
		return nil, 0, registry.ErrNoData
	}

	rows, err := db.QueryContext(ctx, `SELECT `+bodyColumns+` FROM bodies ORDER BY position`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query bodies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]record.BodyRecord, 0)
	for rows.Next() {
		m, err := scanBody(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan body: %w", err)
		}
		records = append(records, m.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate bodies: %w", err)
	}
	bodies, err := record.ToBodies(records)
	if err != nil {
		return nil, 0, err
	}
	return bodies, nextID, nil
}

// Target returns the database path.
func (g *BodyGateway) Target() string { return g.db.Path() }

// SystemGateway stores planetary systems in the systems table.
type SystemGateway struct {
	db *DB
}

var _ registry.Gateway[*celestial.PlanetarySystem] = (*SystemGateway)(nil)

// NewSystemGateway returns a gateway over db.
func NewSystemGateway(db *DB) *SystemGateway {
	return &SystemGateway{db: db}
}

// Save replaces every stored system with systems in one transaction.
func (g *SystemGateway) Save(ctx context.Context, systems []*celestial.PlanetarySystem) error {
	db, err := g.db.conn(true)
	if err != nil {
		return err
	}
	records := record.FromSystems(systems)
	return replace(db, "systems", collectionSystems, uuid.NewString(), time.Now().Unix(), 0, func(tx *sql.Tx) error {
		for i, r := range records {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO systems (position, name, star) VALUES (?, ?, ?)`, i, r.Name, r.Star,
			); err != nil {
				return fmt.Errorf("failed to insert system %q: %w", r.Name, err)
			}
		}
		return nil
	})
}

// Load returns the stored systems in saved order.
func (g *SystemGateway) Load(ctx context.Context) ([]*celestial.PlanetarySystem, error) {
	db, err := g.db.conn(false)
	if err != nil {
		return nil, err
	}
	saved, _, err := snapshotOf(db, collectionSystems)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, registry.ErrNoData
	}

	rows, err := db.QueryContext(ctx, `SELECT name, star FROM systems ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query systems: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]record.SystemRecord, 0)
	for rows.Next() {
		var r record.SystemRecord
		if err := rows.Scan(&r.Name, &r.Star); err != nil {
			return nil, fmt.Errorf("failed to scan system: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate systems: %w", err)
	}
	return record.ToSystems(records), nil
}

// Target returns the database path.
func (g *SystemGateway) Target() string { return g.db.Path() }
