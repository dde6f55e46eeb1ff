package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/cobra"

	"github.com/poselab/posecoach/internal/storage"
)

// attemptRow is the Parquet row shape for exported attempts.
type attemptRow struct {
	ID        int64   `parquet:"id"`
	PoseName  string  `parquet:"pose_name"`
	Score     float64 `parquet:"score"`
	Success   bool    `parquet:"success"`
	Hints     string  `parquet:"hints"`
	CreatedAt string  `parquet:"created_at"`
}

func newExportCmd() *cobra.Command {
	var dbPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export attempt history to a Parquet file",
		Long: `Dumps every recorded attempt to a Parquet file for offline
analysis (scoring trends, per-pose success rates, and so on).`,
		Example: `  posecoach export --db data/attempts.db --out attempts.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewAttemptStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			attempts, err := store.AllAttempts(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]attemptRow, 0, len(attempts))
			for _, a := range attempts {
				rows = append(rows, attemptRow{
					ID:        a.ID,
					PoseName:  a.PoseName,
					Score:     a.Score,
					Success:   a.Success,
					Hints:     a.Hints,
					CreatedAt: a.CreatedAt,
				})
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()

			writer := parquet.NewGenericWriter[attemptRow](f)
			if _, err := writer.Write(rows); err != nil {
				return fmt.Errorf("failed to write parquet rows: %w", err)
			}
			if err := writer.Close(); err != nil {
				return fmt.Errorf("failed to finalize parquet file: %w", err)
			}

			slog.Info("History exported", "attempts", len(rows), "out", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "data/attempts.db", "Path to the attempt history database")
	cmd.Flags().StringVar(&outPath, "out", "attempts.parquet", "Output Parquet file")

	return cmd
}
