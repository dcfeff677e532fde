package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/infrastructure/filestore"
	"github.com/zjrosen/spaceplace/internal/infrastructure/sqlite"
	"github.com/zjrosen/spaceplace/internal/registry"
)

// Stores opens gateways by file extension. Both collections may point at
// the same SQLite file, in which case they share one database handle.
type Stores struct {
	opts filestore.Options
	dbs  map[string]*sqlite.DB
}

// NewStores creates a gateway factory using opts for the file backends.
func NewStores(opts filestore.Options) *Stores {
	return &Stores{opts: opts, dbs: make(map[string]*sqlite.DB)}
}

func isSQLite(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return true
	}
	return false
}

func (s *Stores) db(path string) *sqlite.DB {
	key := filepath.Clean(path)
	if db, ok := s.dbs[key]; ok {
		return db
	}
	db := sqlite.NewDB(path)
	s.dbs[key] = db
	return db
}

// Bodies opens the celestial body gateway for path.
func (s *Stores) Bodies(path string) (registry.Gateway[celestial.Body], error) {
	if isSQLite(path) {
		return sqlite.NewBodyGateway(s.db(path)), nil
	}
	gw, err := filestore.NewBodyGateway(path, s.opts)
	if err != nil {
		return nil, fmt.Errorf("opening body store %s: %w", path, err)
	}
	return gw, nil
}

// Systems opens the planetary system gateway for path.
func (s *Stores) Systems(path string) (registry.Gateway[*celestial.PlanetarySystem], error) {
	if isSQLite(path) {
		return sqlite.NewSystemGateway(s.db(path)), nil
	}
	gw, err := filestore.NewSystemGateway(path, s.opts)
	if err != nil {
		return nil, fmt.Errorf("opening system store %s: %w", path, err)
	}
	return gw, nil
}

// Close closes every database opened through s.
func (s *Stores) Close() error {
	var errs []error
	for _, db := range s.dbs {
		errs = append(errs, db.Close())
	}
	return errors.Join(errs...)
}
