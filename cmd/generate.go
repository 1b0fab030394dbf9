package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/citypulse/mobidemand/app"
	"github.com/citypulse/mobidemand/config"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the historical dataset for the configured date range",
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sum, err := app.Backfill(ctx, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run:             %s\n", sum.RunID)
	fmt.Fprintf(out, "city:            %s\n", sum.City)
	fmt.Fprintf(out, "range:           %s to %s\n", sum.Start.Format("2006-01-02"), sum.End.Format("2006-01-02"))
	fmt.Fprintf(out, "stations:        %d\n", sum.Stations)
	fmt.Fprintf(out, "demand records:  %d\n", sum.DemandRecords)
	fmt.Fprintf(out, "weather records: %d\n", sum.WeatherRecords)
	fmt.Fprintf(out, "events:          %d\n", sum.Events)
	return nil
}
