package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spaceplace/internal/app"
	"github.com/zjrosen/spaceplace/internal/domain/celestial"
	"github.com/zjrosen/spaceplace/internal/presentation"
	"github.com/zjrosen/spaceplace/internal/registry"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Counts and filtered listings of the catalog",
}

var reportCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Count bodies by kind and by planetary system",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			bodies, systems := a.Bodies(), a.Systems()
			counts := presentation.CountsDTO{
				Bodies:       bodies.Count(),
				Stars:        bodies.CountStars(),
				GasPlanets:   bodies.CountGasPlanets(),
				IcePlanets:   bodies.CountIcePlanets(),
				DwarfPlanets: bodies.CountDwarfPlanets(),
				Systems:      systems.Count(),
				PerSystem:    make(map[string]int, systems.Count()),
			}
			order := make([]string, 0, systems.Count())
			for _, s := range systems.Systems() {
				counts.PerSystem[s.Name()] = bodies.CountForSystem(s)
				order = append(order, s.Name())
			}
			return formatter(cmd).FormatCounts(counts, order)
		})
	},
}

// newThresholdCmd builds a report command that filters on one numeric bound.
func newThresholdCmd(use, short, title string, list func(*registry.Celestial, float64) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[0], err)
			}
			return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
				return formatter(cmd).FormatListing(presentation.NewListing(title, list(a.Bodies(), bound)))
			})
		},
	}
}

var reportSystemCmd = &cobra.Command{
	Use:   "system <name>",
	Short: "List the bodies that belong to a planetary system",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			system := a.Systems().ByName(args[0])
			listing := a.Bodies().ListForSystem(system)
			return formatter(cmd).FormatListing(presentation.NewListing("Bodies in "+args[0], listing))
		})
	},
}

var reportSpectralCmd = &cobra.Command{
	Use:   "spectral <class>",
	Short: "List the stars of one spectral class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		class := spectralRune(args[0])
		if class == 0 {
			return fmt.Errorf("spectral class must be a single character, got %q", args[0])
		}
		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			listing := a.Bodies().ListStarsForSpectralType(class)
			return formatter(cmd).FormatListing(presentation.NewListing("Stars of class "+args[0], listing))
		})
	},
}

var reportTopRadiationCmd = &cobra.Command{
	Use:   "top-radiation",
	Short: "Show the five gas planets with the highest radiation level",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			top := a.Bodies().TopFiveHighestRadiationGasPlanets()
			dtos := make([]presentation.BodyDTO, len(top))
			for i, g := range top {
				dtos[i] = presentation.FromBody(i, g)
			}
			return formatter(cmd).FormatBodies("Highest radiation", dtos, registry.MsgNoGasPlanets)
		})
	},
}

func init() {
	reportCmd.AddCommand(
		reportCountsCmd,
		newThresholdCmd("heavier <mass>", "List bodies heavier than mass", "Heavier bodies",
			(*registry.Celestial).ListHeavierThan),
		newThresholdCmd("lighter <mass>", "List bodies lighter than mass", "Lighter bodies",
			(*registry.Celestial).ListLighterThan),
		newThresholdCmd("smaller <diameter>", "List bodies no larger than diameter", "Smaller bodies",
			(*registry.Celestial).ListSmallerThan),
		newThresholdCmd("larger <diameter>", "List bodies larger than diameter", "Larger bodies",
			(*registry.Celestial).ListLargerThan),
		reportSystemCmd,
		reportSpectralCmd,
		reportTopRadiationCmd,
	)
	rootCmd.AddCommand(reportCmd)
}

// bodyDTOs converts found bodies, keeping their catalog positions.
func bodyDTOs(reg *registry.Celestial, bodies ...celestial.Body) []presentation.BodyDTO {
	dtos := make([]presentation.BodyDTO, 0, len(bodies))
	for _, b := range bodies {
		if b == nil {
			continue
		}
		dtos = append(dtos, presentation.FromBody(reg.IndexOfID(b.ID()), b))
	}
	return dtos
}
