package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/squadplan/squadplan/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "squadplan",
	Short: "Weekly schedule generator for the customer-service squads",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (built-in defaults when omitted)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
