package cmd

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/webp"

	"github.com/poselab/posecoach/internal/analysis"
	"github.com/poselab/posecoach/internal/pose"
)

func newAnalyzeCmd() *cobra.Command {
	var poseName string
	var provider string

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze a single image from the command line",
		Long: `Runs the analysis pipeline on a local image file and prints the
result as JSON. Nothing is persisted.`,
		Example: `  # Auto-detect the pose
  posecoach analyze photo.jpg

  # Score against a specific pose
  posecoach analyze photo.jpg --pose warrior_2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := pose.LoadCatalog()
			if err != nil {
				return err
			}

			if poseName != "" && !catalog.Has(poseName) {
				return fmt.Errorf("unknown pose %q (see `posecoach serve` and GET /api/poses for the catalog)", poseName)
			}

			service, err := analysis.NewService(catalog, provider)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open image: %w", err)
			}
			defer file.Close()

			img, _, err := image.Decode(file)
			if err != nil {
				return fmt.Errorf("failed to decode image: %w", err)
			}

			result, err := service.Analyze(cmd.Context(), img, poseName)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&poseName, "pose", "", "Score against this pose instead of auto-detecting")
	cmd.Flags().StringVar(&provider, "provider", "", "Estimator provider: mediapipe, gemini, or ollama (default from POSE_PROVIDER)")

	return cmd
}
