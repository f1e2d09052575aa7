package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "battsim",
	Short: "Li-ion cell discharge simulator",
	Long:  "battsim simulates the discharge of a Li-ion cell under a configurable load profile and reports remaining energy, drained capacity and terminal voltage.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
