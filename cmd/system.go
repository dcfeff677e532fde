package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spaceplace/internal/app"
	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/presentation"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "Manage planetary systems",
}

var systemAddCmd = &cobra.Command{
	Use:   "add <name> <star>",
	Short: "Add a planetary system",
	Long: `Add a planetary system orbiting the named star.

System names are unique regardless of case. Names longer than 50 characters
and star names longer than 30 characters are truncated.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, true, func(_ context.Context, a *app.App) error {
			system := celestial.NewPlanetarySystem(args[0], args[1])
			if !a.Systems().Add(system) {
				return fmt.Errorf("planetary system %q already exists", args[0])
			}
			return formatter(cmd).FormatMessage("Added " + system.String())
		})
	},
}

var systemDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a planetary system by name",
	Long: `Delete a planetary system by name.

Bodies that belong to the system keep their reference to it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, true, func(_ context.Context, a *app.App) error {
			removed := a.Systems().RemoveByName(args[0])
			if removed == nil {
				return fmt.Errorf("no planetary system named %q", args[0])
			}
			return formatter(cmd).FormatMessage("Deleted " + removed.String())
		})
	},
}

var systemUpdateCmd = &cobra.Command{
	Use:   "update <name> <star>",
	Short: "Change the star a planetary system orbits",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, true, func(_ context.Context, a *app.App) error {
			if !a.Systems().UpdateStarName(args[0], args[1]) {
				return fmt.Errorf("no planetary system named %q", args[0])
			}
			return formatter(cmd).FormatMessage("Updated " + a.Systems().ByName(args[0]).String())
		})
	},
}

var systemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List planetary systems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			f := formatter(cmd)
			if f.JSON() {
				return f.FormatResult(presentation.FromSystems(a.Systems().Systems()))
			}
			return f.FormatListing(presentation.NewListing("Planetary systems", a.Systems().ListAll()))
		})
	},
}

var systemFindCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Show the planetary system with the given name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			return formatter(cmd).FormatListing(presentation.NewListing("", a.Systems().ListByName(args[0])))
		})
	},
}

var systemSortCmd = &cobra.Command{
	Use:       "sort name|star",
	Short:     "Reorder planetary systems by name or by star name",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"name", "star"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, true, func(_ context.Context, a *app.App) error {
			if args[0] == "star" {
				a.Systems().SortByStarName()
			} else {
				a.Systems().SortByName()
			}
			return formatter(cmd).FormatListing(presentation.NewListing("Planetary systems", a.Systems().ListAll()))
		})
	},
}

func init() {
	systemCmd.AddCommand(systemAddCmd, systemDeleteCmd, systemUpdateCmd, systemListCmd, systemFindCmd, systemSortCmd)
	rootCmd.AddCommand(systemCmd)
}
