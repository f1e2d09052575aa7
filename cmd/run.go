package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/battsim/app"
	"github.com/kilianp07/battsim/config"
	"github.com/kilianp07/battsim/infra/logger"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured discharge scenario",
	RunE:  runSimulation,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()

	sum, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s finished at %v\n", sum.RunID, sum.EndTime)
	fmt.Fprintf(out, "remaining energy: %.1f J (%.1f%%)\n", sum.RemainingJ, sum.Fraction*100)
	fmt.Fprintf(out, "terminal voltage: %.3f V\n", sum.VoltageV)
	fmt.Fprintf(out, "drained capacity: %.4f Ah\n", sum.DrainedAh)
	if sum.Depleted {
		fmt.Fprintln(out, "cell depleted before the scenario stop time")
	}
	return nil
}
