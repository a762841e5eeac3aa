package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/courseforge/internal/api"
	"github.com/abhisek/courseforge/internal/app"
	"github.com/abhisek/courseforge/internal/editor"
	"github.com/abhisek/courseforge/internal/generate"
	"github.com/abhisek/courseforge/internal/llm"
	"github.com/abhisek/courseforge/internal/quiz"
	"github.com/abhisek/courseforge/internal/store"
)

const defaultAPIURL = "http://localhost:8000"

// runApp builds the API client and stores, then launches the TUI.
func runApp(cmd *cobra.Command) error {
	baseURL, _ := cmd.Flags().GetString("api-url")
	if baseURL == "" {
		baseURL = os.Getenv("COURSEFORGE_API_URL")
	}
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = os.Getenv("COURSEFORGE_API_TOKEN")
	}

	var userID int64
	if raw := os.Getenv("COURSEFORGE_USER_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("COURSEFORGE_USER_ID: %w", err)
		}
		userID = id
	}

	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	defer log.Sync()

	client := api.NewClient(baseURL,
		api.WithToken(token),
		api.WithLogger(log),
	)

	// The TUI confirms destructive actions itself, so the stores get a
	// pass-through confirmer.
	confirmed := store.ConfirmFunc(func(string) bool { return true })

	courses := store.NewCourseStore(client, userID, confirmed, log)
	tracker := quiz.NewTracker(client)
	lessons := store.NewLessonStore(client, courses, confirmed, tracker, log)

	gen := buildGenerator(cmd, client, log)
	ed := editor.New(client, lessons, gen, confirmed, log)

	return app.Run(app.Deps{
		Courses: courses,
		Lessons: lessons,
		Editor:  ed,
	})
}

// buildGenerator prefers a local LLM provider when one is configured,
// falling back to the server's generation endpoints.
func buildGenerator(cmd *cobra.Command, client *api.Client, log *zap.Logger) generate.ContentGenerator {
	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		}
	}
	if err := cfg.Validate(); err != nil {
		return generate.NewRemote(client)
	}

	provider, err := llm.NewProvider(cmd.Context(), cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Falling back to server-side generation.")
		return generate.NewRemote(client)
	}
	return generate.NewDirect(provider, generate.DefaultDirectConfig(), log)
}

// newLogger builds a file-backed debug logger when COURSEFORGE_DEBUG_LOG
// is set. Logging to the terminal would fight the TUI for the screen.
func newLogger() (*zap.Logger, error) {
	path := os.Getenv("COURSEFORGE_DEBUG_LOG")
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
