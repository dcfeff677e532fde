package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/spaceplace/internal/app"
	"github.com/zjrosen/spaceplace/internal/log"
)

// errLoadFailed stops a mutating command so a catalog that could not be read
// is never overwritten with a partial one.
var errLoadFailed = errors.New("catalog could not be loaded; see the debug log")

// withCatalog loads the catalog, runs fn, and saves afterwards when mutate
// is set and fn succeeded.
func withCatalog(cmd *cobra.Command, mutate bool, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var tracer trace.Tracer
	if provider != nil && provider.Enabled() {
		tracer = provider.Tracer()
	}

	a, err := app.New(cfg, tracer)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if report := a.Load(ctx); report.Failed() {
		if mutate {
			return errLoadFailed
		}
		log.Warn(log.CatCLI, "Showing a partially loaded catalog",
			"bodies", report.Bodies.String(), "systems", report.Systems.String())
	}

	if err := fn(ctx, a); err != nil {
		return err
	}
	if !mutate {
		return nil
	}
	if err := a.Save(ctx); err != nil {
		return fmt.Errorf("%w (changes were not written)", err)
	}
	return nil
}
