// Package config provides configuration types and defaults for spaceplace.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/spaceplace/internal/log"
)

// Output formats accepted by OutputConfig.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all configuration options for spaceplace.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Log     LogConfig     `mapstructure:"log"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Output  OutputConfig  `mapstructure:"output"`
}

// StorageConfig locates the two catalog files. The extension of each file
// selects its backend: .json, .yaml/.yml or .db/.sqlite.
type StorageConfig struct {
	Dir           string `mapstructure:"dir"`            // data directory (default: ./.spaceplace)
	CelestialFile string `mapstructure:"celestial_file"` // relative to Dir unless absolute
	SystemsFile   string `mapstructure:"systems_file"`   // relative to Dir unless absolute
}

// CacheConfig controls the decode cache used by the file backends.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// TracingConfig holds tracing configuration for persistence operations.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/spaceplace/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// LogConfig holds debug logging options.
type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	Path  string `mapstructure:"path"` // default: debug.log in the working directory
}

// WatchConfig holds options for the watch command.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// OutputConfig selects how commands print results.
type OutputConfig struct {
	Format string `mapstructure:"format"` // "text" (default) or "json"
}

// CelestialPath returns the celestial body file joined onto dir unless it is absolute.
func (s StorageConfig) CelestialPath(dir string) string {
	return joinData(dir, s.CelestialFile)
}

// SystemsPath returns the planetary system file joined onto dir unless it is absolute.
func (s StorageConfig) SystemsPath(dir string) string {
	return joinData(dir, s.SystemsFile)
}

func joinData(dir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/spaceplace/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "spaceplace", "traces", "traces.jsonl")
}

// Validate checks the whole configuration and returns the first problem found.
func Validate(cfg Config) error {
	if err := ValidateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", cfg.Cache.TTL)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	switch cfg.Output.Format {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatText, FormatJSON, cfg.Output.Format)
	}
	return nil
}

// ValidateStorage checks that both catalog files are named with a known extension.
func ValidateStorage(storage StorageConfig) error {
	files := []struct{ key, value string }{
		{"storage.celestial_file", storage.CelestialFile},
		{"storage.systems_file", storage.SystemsFile},
	}
	for _, f := range files {
		if f.value == "" {
			return fmt.Errorf("%s is required", f.key)
		}
		switch filepath.Ext(f.value) {
		case ".json", ".yaml", ".yml", ".db", ".sqlite":
		default:
			return fmt.Errorf("%s must end in .json, .yaml, .yml, .db or .sqlite, got %q", f.key, f.value)
		}
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", or \"stdout\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "file" && tracing.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}

	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Dir:           "", // Resolved to ./.spaceplace at runtime
			CelestialFile: "bodies.json",
			SystemsFile:   "systems.json",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			FilePath:   DefaultTracesFilePath(),
			SampleRate: 1.0,
		},
		Log: LogConfig{
			Path: "debug.log",
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Spaceplace Configuration

# Where the catalog is stored. The file extension picks the backend:
#   .json          - JSON document
#   .yaml / .yml   - YAML document
#   .db / .sqlite  - SQLite database (both files may point at the same database)
storage:
  # dir: /path/to/data     # Data directory (default: ./.spaceplace)
  celestial_file: bodies.json
  systems_file: systems.json

# Decode cache for the JSON and YAML backends
cache:
  enabled: true
  ttl: 5m

# Debug logging (also enabled with --debug or SPACEPLACE_DEBUG=1)
log:
  debug: false
  path: debug.log

# Debounce window for 'spaceplace watch'
watch:
  debounce: 100ms

# Output format for listings: text (default) or json
output:
  format: text

# Tracing of load and save operations
# tracing:
#   enabled: false        # Enable/disable tracing (default: false)
#   exporter: file        # Export backend: none, file, stdout (default: file)
#   file_path: ~/.config/spaceplace/traces/traces.jsonl
#   sample_rate: 1.0      # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
