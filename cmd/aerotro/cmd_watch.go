package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/trokit/aerotro/internal/dispatcher"
	"github.com/trokit/aerotro/internal/logging"
	"github.com/trokit/aerotro/internal/parser"
	"github.com/trokit/aerotro/internal/watch"
)

const renderCommand = "render"

var (
	watchFormat   string
	watchOut      string
	watchDebounce time.Duration
	watchInitial  bool
	watchQueue    int
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-render unit files whenever they change",
	Long: `Watches directories for created or modified .yaml, .yml and .json unit
files and regenerates their readouts. Renders are queued and run one at a
time; the command stops on interrupt after the queue drains.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	flags := watchCmd.Flags()
	flags.StringVarP(&watchFormat, "format", "f", "", "output format: text, html or markdown")
	flags.StringVarP(&watchOut, "out", "o", "", "directory for rendered readouts")
	flags.DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before a changed file is rendered")
	flags.BoolVar(&watchInitial, "initial", false, "render every unit file once at startup")
	flags.IntVar(&watchQueue, "queue", 64, "maximum number of pending renders")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format := watchFormat
	if format == "" {
		format = viper.GetString("output.format")
	}
	dir := watchOut
	if dir == "" {
		dir = viper.GetString("output.dir")
	}
	settings, err := resolveOutput(format, dir, false, 0)
	if err != nil {
		return err
	}

	svc, err := application.readoutService(ctx)
	if err != nil {
		return err
	}

	d, err := dispatcher.New(logging.NewDispatcherLogger(application.zlog))
	if err != nil {
		return err
	}
	defer d.Close()

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	d.Register(renderCommand, func(ctx context.Context, j dispatcher.Job) error {
		path := j.Args[0]
		return renderOne(logging.WithUnitFile(ctx, path), svc, path, settings, stdout, stderr)
	}, dispatcher.Buffered(watchQueue), dispatcher.Logged())

	enqueue := func(ctx context.Context, path string) {
		if err := d.Dispatch(ctx, dispatcher.Job{Command: renderCommand, Args: []string{path}}); err != nil {
			application.logger.Warn("Render not queued", "path", path, "error", err)
		}
	}

	w, initial, err := startWatcher(args, watchInitial, application.logger, enqueue)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, path := range initial {
		enqueue(ctx, path)
	}

	fmt.Fprintf(stderr, "Watching %d director(ies), press Ctrl+C to stop\n", len(args))
	if err := w.Run(ctx); err != nil {
		return err
	}

	stats := w.Stats()
	application.logger.Info("Stopped watching", "changes", stats.Changes, "errors", stats.Errors)
	return nil
}

// startWatcher lists the unit files to render at startup, when initial is
// set, and then starts watching dirs. Nothing is watched if listing fails.
func startWatcher(dirs []string, initial bool, logger *slog.Logger, onChange watch.ChangeFunc) (*watch.Watcher, []string, error) {
	var files []string
	if initial {
		var err error
		if files, err = unitFiles(dirs); err != nil {
			return nil, nil, err
		}
	}
	w, err := watch.New(dirs, watchDebounce, logger, onChange)
	if err != nil {
		return nil, nil, err
	}
	return w, files, nil
}

// unitFiles lists the unit files directly inside dirs, sorted by path.
func unitFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if _, ok := parser.FormatFromPath(e.Name()); ok {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
	}
	slices.Sort(files)
	return files, nil
}
