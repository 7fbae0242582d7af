package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localscope/localscope-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "localscope",
	Short: "Retail location viability scoring for Buenos Aires",
	Long:  "Geocodes an address, gathers nearby competitors and transit stops, and scores the site on competition, transit, rent and demographic fit.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
