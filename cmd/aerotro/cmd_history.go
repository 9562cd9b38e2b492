package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/trokit/aerotro/internal/config"
	"github.com/trokit/aerotro/internal/storage"
	"github.com/trokit/aerotro/internal/tro"
	"github.com/trokit/aerotro/pkg/core"
)

var (
	historyLimit    int
	historySnapshot string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived readouts",
	Long: `Lists readouts stored by the configured backend, newest first. The memory
backend only holds readouts generated by the running process, so this is
most useful with the sqlite and postgres backends.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.initStorage(); err != nil {
			return err
		}
		readouts, err := application.storage.ListReadouts()
		if err != nil {
			return err
		}
		if historySnapshot != "" {
			if err := snapshotStorage(application.storage, historySnapshot); err != nil {
				return err
			}
			application.logger.Info("Wrote storage snapshot", "path", historySnapshot)
		}
		if historyLimit > 0 && len(readouts) > historyLimit {
			readouts = readouts[:historyLimit]
		}
		writeHistory(cmd.OutOrStdout(), readouts)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of readouts to list, 0 for all")
	historyCmd.Flags().StringVar(&historySnapshot, "snapshot", "", "also copy the archive to this file (sqlite storage only)")
}

func snapshotStorage(b storage.Backend, dest string) error {
	s, ok := b.(storage.Snapshotter)
	if !ok {
		return fmt.Errorf("storage type %s cannot write snapshots", config.GetStorageConfig().Type)
	}
	return s.Snapshot(dest)
}

var historyRow = tro.RowFormat{
	Widths: []int{20, 30, 10, 6, 36},
	Justs:  []tro.Justification{tro.Left, tro.Left, tro.Left, tro.Center, tro.Left},
}

func writeHistory(w io.Writer, readouts []core.Readout) {
	if len(readouts) == 0 {
		fmt.Fprintln(w, "No readouts stored.")
		return
	}
	fmt.Fprintln(w, historyRow.Format("Generated", "Unit", "Format", "Diag", "ID"))
	for _, r := range readouts {
		fmt.Fprintln(w, historyRow.Format(
			r.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			r.UnitName,
			r.Format,
			fmt.Sprint(len(r.Diagnostics)),
			r.ID,
		))
	}
}
