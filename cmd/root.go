package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posecoach",
		Short: "Yoga pose scoring backend with model-based landmark detection",
		Long: `Posecoach analyzes photographs of yoga poses.

It detects body landmarks with an external pose-estimation model,
measures joint angles, scores them against a reference catalog of
poses, and serves the results over a small web API with attempt
history.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
