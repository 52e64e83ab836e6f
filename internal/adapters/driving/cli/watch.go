package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estix-cli/internal/adapters/driving/watch"
)

var (
	watchDir  string
	watchRate int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Import documents dropped into an inbox directory",
	Long: `Watch an inbox directory and import every .esx document that
appears in it.

Imported documents are moved to processed/ and rejected ones to failed/
inside the inbox. Documents already in the inbox are imported first.
The inbox defaults to the watch.dir setting. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", "", "inbox directory (overrides watch.dir)")
	watchCmd.Flags().IntVar(&watchRate, "rate", 0, "documents imported per second (overrides watch.rate)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if interchangeService == nil {
		return errors.New("interchange service not configured")
	}

	dir, rate := watchDir, watchRate
	if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if dir == "" {
			dir = settings.WatchDir
		}
		if rate <= 0 {
			rate = settings.WatchRate
		}
	}
	if dir == "" {
		return errors.New("no inbox directory: pass --dir or run 'estix settings set watch.dir <path>'")
	}

	w, err := watch.New(interchangeService, dir, rate, watch.WithResultHandler(func(r watch.Result) {
		if r.Err != nil {
			cmd.PrintErrf("failed   %s: %v\n", r.Path, r.Err)
			return
		}
		cmd.Printf("imported %s as %s (%s)\n", r.Path, r.Summary.ProjectID, r.Summary.ProjectName)
	}))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", w.Dir())
	return w.Run(ctx)
}
