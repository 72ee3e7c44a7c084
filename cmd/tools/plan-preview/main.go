// Package main is the plan-preview operator CLI. It runs the planning
// engines locally so windows, titles and the activity registry can be checked
// without a broker.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plan-preview",
	Short: "Preview ready-plan building blocks and check the activity registry",
	Long: `plan-preview runs the time window and title engines with the same code the
workers use, and validates the activity registry against the task types the
worker manager registers.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
