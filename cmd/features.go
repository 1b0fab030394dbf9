package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/citypulse/mobidemand/features"
)

var (
	featuresInput  string
	featuresOutput string
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Build the feature table from a collected raw dataset",
	RunE:  runFeatures,
}

func init() {
	featuresCmd.Flags().StringVar(&featuresInput, "input", "data/raw/trip_data.csv", "raw demand CSV")
	featuresCmd.Flags().StringVar(&featuresOutput, "output", "data/processed/features.csv", "feature table destination")
	rootCmd.AddCommand(featuresCmd)
}

func runFeatures(cmd *cobra.Command, args []string) error {
	in, err := os.Open(featuresInput)
	if err != nil {
		return fmt.Errorf("open raw dataset: %w", err)
	}
	defer in.Close()

	recs, err := features.ReadDemandCSV(in)
	if err != nil {
		return fmt.Errorf("read raw dataset: %w", err)
	}
	rows := features.Build(recs)

	if err := os.MkdirAll(filepath.Dir(featuresOutput), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(featuresOutput)
	if err != nil {
		return fmt.Errorf("create feature table: %w", err)
	}
	if err := features.WriteCSV(out, rows); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d feature rows to %s\n", len(rows), featuresOutput)
	return nil
}
