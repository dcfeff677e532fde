// Package app wires the catalog registries to configuration and storage.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/spaceplace/internal/config"
	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/infrastructure/filestore"
	"github.com/zjrosen/spaceplace/internal/log"
	"github.com/zjrosen/spaceplace/internal/paths"
	"github.com/zjrosen/spaceplace/internal/registry"
	"github.com/zjrosen/spaceplace/internal/tracing"
)

// ErrSaveFailed is returned when either registry could not be written.
var ErrSaveFailed = errors.New("failed to save catalog")

// App owns the id sequence and both registries for one command run.
type App struct {
	dataDir     string
	bodiesPath  string
	systemsPath string

	ids     *celestial.IDSequence
	bodies  *registry.Celestial
	systems *registry.Planetary
	stores  *Stores
}

// LoadReport holds the outcome of loading each registry.
type LoadReport struct {
	Bodies   registry.LoadResult
	Systems  registry.LoadResult
	Relinked int
}

// Failed reports whether either registry failed to load.
func (r LoadReport) Failed() bool {
	return r.Bodies == registry.LoadFailed || r.Systems == registry.LoadFailed
}

// New builds an App from configuration. A nil tracer disables tracing.
func New(cfg config.Config, tracer trace.Tracer) (*App, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	dataDir := paths.ResolveDataDir(cfg.Storage.Dir, cfg.Storage.CelestialFile, cfg.Storage.SystemsFile)
	bodiesPath := cfg.Storage.CelestialPath(dataDir)
	systemsPath := cfg.Storage.SystemsPath(dataDir)

	stores := NewStores(filestore.Options{CacheEnabled: cfg.Cache.Enabled, CacheTTL: cfg.Cache.TTL})
	bodyGW, err := stores.Bodies(bodiesPath)
	if err != nil {
		return nil, err
	}
	systemGW, err := stores.Systems(systemsPath)
	if err != nil {
		return nil, err
	}

	var opts []registry.Option
	if tracer != nil {
		opts = append(opts, registry.WithTracer(tracer))
	}

	ids := celestial.NewIDSequence()
	log.Debug(log.CatCLI, "Catalog configured", "data_dir", dataDir, "bodies", bodiesPath, "systems", systemsPath)

	return &App{
		dataDir:     dataDir,
		bodiesPath:  bodiesPath,
		systemsPath: systemsPath,
		ids:         ids,
		bodies:      registry.NewCelestial(ids, bodyGW, opts...),
		systems:     registry.NewPlanetary(systemGW, opts...),
		stores:      stores,
	}, nil
}

// Load reads systems and then bodies, and points each body at the system
// instance held by the planetary registry.
func (a *App) Load(ctx context.Context) LoadReport {
	report := LoadReport{
		Systems: a.systems.Load(ctx),
		Bodies:  a.bodies.Load(ctx),
	}
	report.Relinked = a.bodies.Relink(a.systems.Shared)
	log.Info(log.CatCLI, "Catalog loaded",
		"bodies", report.Bodies.String(), "systems", report.Systems.String(), "relinked", report.Relinked)
	return report
}

// Save writes both registries. Both are attempted even when the first fails.
func (a *App) Save(ctx context.Context) error {
	systemsOK := a.systems.Save(ctx)
	bodiesOK := a.bodies.Save(ctx)
	switch {
	case !systemsOK && !bodiesOK:
		return fmt.Errorf("%w: %s and %s", ErrSaveFailed, a.systemsPath, a.bodiesPath)
	case !systemsOK:
		return fmt.Errorf("%w: %s", ErrSaveFailed, a.systemsPath)
	case !bodiesOK:
		return fmt.Errorf("%w: %s", ErrSaveFailed, a.bodiesPath)
	}
	return nil
}

// Close releases storage handles.
func (a *App) Close() error { return a.stores.Close() }

// IDs returns the sequence used for new bodies.
func (a *App) IDs() *celestial.IDSequence { return a.ids }

// Bodies returns the celestial registry.
func (a *App) Bodies() *registry.Celestial { return a.bodies }

// Systems returns the planetary system registry.
func (a *App) Systems() *registry.Planetary { return a.systems }

// DataDir returns the resolved data directory.
func (a *App) DataDir() string { return a.dataDir }

// BodiesPath returns the celestial body file.
func (a *App) BodiesPath() string { return a.bodiesPath }

// SystemsPath returns the planetary system file.
func (a *App) SystemsPath() string { return a.systemsPath }

// TracingConfig converts the tracing section of the configuration.
func TracingConfig(cfg config.TracingConfig) tracing.Config {
	tc := tracing.DefaultConfig()
	tc.Enabled = cfg.Enabled
	if cfg.Exporter != "" {
		tc.Exporter = cfg.Exporter
	}
	if cfg.FilePath != "" {
		tc.FilePath = cfg.FilePath
	}
	tc.SampleRate = cfg.SampleRate
	return tc
}
