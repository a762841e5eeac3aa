package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "courseforge",
	Short: "Terminal client for authoring interactive courses",
	Long: "Courseforge is a terminal app for building interactive courses: " +
		"lesson plans, content blocks, quizzes, and AI-assisted generation, " +
		"all against a Courseforge server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// A local .env is a convenience for development; real deployments set
	// the environment directly.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().String("api-url", "", "Server base URL (overrides COURSEFORGE_API_URL)")
	rootCmd.PersistentFlags().String("token", "", "API token (overrides COURSEFORGE_API_TOKEN)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(llmCmd)
}
