package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spaceplace/internal/config"
)

var (
	useCelestial string
	useSystems   string
	useDir       string
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Show or change where the catalog is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return formatter(cmd).FormatResult(map[string]string{
			"config":         configUsed,
			"dir":            cfg.Storage.Dir,
			"celestial_file": cfg.Storage.CelestialFile,
			"systems_file":   cfg.Storage.SystemsFile,
		})
	},
}

var storageUseCmd = &cobra.Command{
	Use:   "use",
	Short: "Point the config file at other catalog files",
	Long: `Point the config file at other catalog files. The extension of each file
selects its backend: .json, .yaml/.yml or .db/.sqlite. Both files may name
the same SQLite database.

Other settings and comments in the config file are kept.

Examples:
  spaceplace storage use --celestial catalog.db --systems catalog.db
  spaceplace storage use --celestial bodies.yaml --systems systems.yaml --data-dir ~/space`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		storage := cfg.Storage
		if cmd.Flags().Changed("celestial") {
			storage.CelestialFile = useCelestial
		}
		if cmd.Flags().Changed("systems") {
			storage.SystemsFile = useSystems
		}
		if cmd.Flags().Changed("data-dir") {
			storage.Dir = useDir
		}
		if err := config.SaveStorage(configUsed, storage); err != nil {
			return fmt.Errorf("saving storage config: %w", err)
		}
		cfg.Storage = storage
		return formatter(cmd).FormatMessage(fmt.Sprintf("Storage set in %s: %s, %s",
			configUsed, storage.CelestialFile, storage.SystemsFile))
	},
}

func init() {
	storageUseCmd.Flags().StringVar(&useCelestial, "celestial", "", "celestial body file")
	storageUseCmd.Flags().StringVar(&useSystems, "systems", "", "planetary system file")
	storageUseCmd.Flags().StringVar(&useDir, "data-dir", "", "data directory")
	storageCmd.AddCommand(storageUseCmd)
	rootCmd.AddCommand(storageCmd)
}
