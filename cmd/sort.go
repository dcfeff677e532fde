package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spaceplace/internal/app"
	"github.com/zjrosen/spaceplace/internal/presentation"
)

var sortCmd = &cobra.Command{
	Use:   "sort mass|diameter|name|star",
	Short: "Reorder the catalog and save the new order",
	Long: `Reorder the catalog and save the new order.

  mass      heaviest first
  diameter  smallest first
  name      alphabetical by body name
  star      alphabetical by the star each body's system orbits; every body
            must belong to a planetary system`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"mass", "diameter", "name", "star"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, true, func(_ context.Context, a *app.App) error {
			reg := a.Bodies()
			switch args[0] {
			case "mass":
				reg.SortByMassDescending()
			case "diameter":
				reg.SortByDiameterAscending()
			case "name":
				reg.SortByNameAscending()
			case "star":
				if err := reg.SortByOrbitingStarNameAscending(); err != nil {
					return err
				}
			}
			return formatter(cmd).FormatListing(presentation.NewListing("Celestial bodies", reg.ListAll()))
		})
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
}
