package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "creditrisk",
	Short: "SIC code accuracy scoring and correction",
	Long:  "Scores how well a company's assigned SIC code matches its business description, predicts a better code from the catalog, and records analyst-confirmed corrections.",
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
