package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/comercial-bot/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "comercial-bot",
	Short: "Brand-to-executive lookup bot",
	Long:  "Extracts brand names from free-text questions or package photos via Claude, resolves them against the commercial account table, and answers in Spanish.",
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
