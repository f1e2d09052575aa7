package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/battsim/config"
	"github.com/kilianp07/battsim/core/battery"
)

var (
	curveCurrentA float64
	curvePoints   int
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the voltage discharge curve of the configured cell",
	Long:  "Prints terminal voltage as a function of drained capacity at a fixed discharge current, as CSV on stdout.",
	RunE:  runCurve,
}

func init() {
	curveCmd.Flags().Float64Var(&curveCurrentA, "current", 0, "discharge current in amperes (default: cell typical current)")
	curveCmd.Flags().IntVar(&curvePoints, "points", 100, "number of points between empty and rated capacity")
	rootCmd.AddCommand(curveCmd)
}

func runCurve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if curvePoints < 2 {
		return fmt.Errorf("points must be at least 2")
	}
	params := cfg.Cell.Parameters()
	current := curveCurrentA
	if current == 0 {
		current = params.TypCurrentA
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "drained_ah,voltage_v")
	// stop one step short of the rated capacity, where the curve diverges
	for i := 0; i < curvePoints; i++ {
		drained := params.QRatedAh * float64(i) / float64(curvePoints)
		v := battery.TerminalVoltage(params, drained, current)
		fmt.Fprintf(out, "%.5f,%.4f\n", drained, v)
	}
	return nil
}
