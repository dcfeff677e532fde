package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/spaceplace/internal/app"
	"github.com/zjrosen/spaceplace/internal/config"
	"github.com/zjrosen/spaceplace/internal/log"
	"github.com/zjrosen/spaceplace/internal/presentation"
	"github.com/zjrosen/spaceplace/internal/tracing"
)

// defaultConfigPath is where a config file is created when none is found.
const defaultConfigPath = ".spaceplace/config.yaml"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config

	provider   *tracing.Provider
	closeLog   func()
	configUsed string
)

var rootCmd = &cobra.Command{
	Use:   "spaceplace",
	Short: "A catalog of celestial bodies and planetary systems",
	Long: `Keep a catalog of stars, gas planets, ice planets and dwarf planets and the
planetary systems they belong to. The catalog is loaded from disk when a
command starts and written back when the command changed it.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .spaceplace/config.yaml, then ~/.config/spaceplace/config.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "write debug logs")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format: text or json")
	rootCmd.PersistentFlags().String("dir", "", "catalog data directory")

	_ = viper.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("storage.dir", rootCmd.PersistentFlags().Lookup("dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("storage.dir", defaults.Storage.Dir)
	viper.SetDefault("storage.celestial_file", defaults.Storage.CelestialFile)
	viper.SetDefault("storage.systems_file", defaults.Storage.SystemsFile)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("log.debug", defaults.Log.Debug)
	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("output.format", defaults.Output.Format)

	viper.SetEnvPrefix("SPACEPLACE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("log.debug", "SPACEPLACE_DEBUG", "SPACEPLACE_LOG_DEBUG")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .spaceplace/config.yaml (current directory)
		// 2. ~/.config/spaceplace/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "spaceplace"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .spaceplace/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				viper.SetConfigFile(defaultConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	configUsed = viper.ConfigFileUsed()
	if configUsed == "" {
		configUsed = defaultConfigPath
	}

	cfg = config.Defaults()
	_ = viper.Unmarshal(&cfg)
}

// setup starts logging and tracing before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	if cfg.Log.Debug {
		cleanup, err := log.Init(cfg.Log.Path)
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		closeLog = cleanup
		log.Debug(log.CatCLI, "Command started", "command", cmd.CommandPath(), "config", configUsed)
	}

	p, err := tracing.NewProvider(app.TracingConfig(cfg.Tracing))
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	provider = p
	return nil
}

// teardown flushes spans and closes the debug log. It runs after every
// command, including failed ones.
func teardown(ctx context.Context) error {
	var err error
	if provider != nil {
		err = provider.Shutdown(ctx)
		provider = nil
	}
	if closeLog != nil {
		closeLog()
		closeLog = nil
	}
	return err
}

// formatter returns the output formatter for cmd.
func formatter(cmd *cobra.Command) *presentation.Formatter {
	return presentation.NewFormatter(cmd.OutOrStdout(), cfg.Output.Format)
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if tErr := teardown(context.Background()); err == nil {
		err = tErr
	}
	return err
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
