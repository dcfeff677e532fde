package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/spaceplace/internal/app"
	"github.com/zjrosen/spaceplace/internal/log"
	"github.com/zjrosen/spaceplace/internal/presentation"
	"github.com/zjrosen/spaceplace/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a fresh listing whenever the catalog files change",
	Long: `Print the catalog listing, then print it again every time another
process writes the catalog files. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withCatalog(cmd, false, func(_ context.Context, a *app.App) error {
			for _, p := range []string{a.BodiesPath(), a.SystemsPath()} {
				if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
					return fmt.Errorf("creating data directory: %w", err)
				}
			}

			w, err := watcher.New(watcher.Config{
				Paths:       []string{a.BodiesPath(), a.SystemsPath()},
				DebounceDur: cfg.Watch.Debounce,
			})
			if err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()

			changes, err := w.Start()
			if err != nil {
				return err
			}
			return watchLoop(ctx, a, changes, formatter(cmd))
		})
	},
}

// watchLoop prints the catalog once and again after every change until ctx
// is done or changes is closed.
func watchLoop(ctx context.Context, a *app.App, changes <-chan struct{}, f *presentation.Formatter) error {
	show := func() error {
		return f.FormatListing(presentation.NewListing("Celestial bodies", a.Bodies().ListAll()))
	}
	if err := show(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			report := a.Load(ctx)
			log.Info(log.CatWatcher, "Reloaded catalog",
				"bodies", report.Bodies.String(), "systems", report.Systems.String())
			if err := show(); err != nil {
				return err
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
