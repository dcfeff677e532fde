package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spaceplace/internal/app"
	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/registry"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find the first body matching a name, mass or diameter",
}

var searchNameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Find a body by name, ignoring case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, func(reg *registry.Celestial) celestial.Body {
			return reg.SearchByName(args[0])
		})
	},
}

// newNumericSearchCmd builds a search on an exact numeric field value.
func newNumericSearchCmd(use, short string, search func(*registry.Celestial, float64) celestial.Body) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[0], err)
			}
			return runSearch(cmd, func(reg *registry.Celestial) celestial.Body {
				return search(reg, v)
			})
		},
	}
}

func runSearch(cmd *cobra.Command, find func(*registry.Celestial) celestial.Body) error {
	return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
		found := find(a.Bodies())
		return formatter(cmd).FormatBodies("Found", bodyDTOs(a.Bodies(), found), registry.MsgNoMatch)
	})
}

func init() {
	searchCmd.AddCommand(
		searchNameCmd,
		newNumericSearchCmd("mass <mass>", "Find a body with exactly this mass", (*registry.Celestial).SearchByMass),
		newNumericSearchCmd("diameter <diameter>", "Find a body with exactly this diameter", (*registry.Celestial).SearchByDiameter),
	)
	rootCmd.AddCommand(searchCmd)
}
