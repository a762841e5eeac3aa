package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/courseforge/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect local LLM configuration",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that a local LLM provider is configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if cfg.Validate() != nil {
			if discovered, ok := llm.DiscoverConfig(); ok {
				cfg = discovered
			}
		}
		if err := cfg.Validate(); err != nil {
			fmt.Println("No local LLM provider configured.")
			fmt.Println("Content generation will use the server.")
			fmt.Println()
			fmt.Println("Details:", err)
			return nil
		}

		provider, err := llm.NewProvider(cmd.Context(), cfg, zap.NewNop())
		if err != nil {
			return fmt.Errorf("initialize provider: %w", err)
		}

		fmt.Printf("Provider: %s\n", cfg.Provider)
		fmt.Printf("Model:    %s\n", provider.ModelID())
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
}
