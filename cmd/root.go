// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	modelPath string
	logLevel  string
	visual    bool
)

var rootCmd = &cobra.Command{
	Use:   "desim",
	Short: "Discrete-event simulator for queueing-network models",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&modelPath, "model", "", "path to the model description (YAML)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&visual, "visual", false, "poll and print the visual stream after the run")
	runCmd.MarkFlagRequired("model")

	rootCmd.AddCommand(runCmd)
}

func parseLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	return level
}
