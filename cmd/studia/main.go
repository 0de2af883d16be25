package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/acamargo/studia/internal/backend"
	"github.com/acamargo/studia/internal/cli"
	"github.com/acamargo/studia/internal/db"
	"github.com/acamargo/studia/internal/realtime"
	"github.com/acamargo/studia/internal/repository"
	"github.com/acamargo/studia/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.studia/studia.db
	dbPath := os.Getenv("STUDIA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".studia", "studia.db")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work
	courseRepo := repository.NewSQLiteCourseRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire the generation backend client
	backendCfg := backend.LoadConfig()
	var observer backend.Observer = backend.NoopObserver{}
	if backendCfg.LogCalls {
		observer = backend.NewLogObserver(os.Stderr)
	}
	client := backend.NewHTTPClient(backendCfg, observer)

	// Wire the realtime push feed; it reconnects on its own for the
	// lifetime of the process.
	feed := realtime.NewClient(websocketURL(backendCfg.Endpoint))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := feed.Start(ctx); err != nil {
		// Push updates are an enhancement; polling still works.
		fmt.Fprintf(os.Stderr, "realtime feed unavailable: %v\n", err)
	}
	defer feed.Close()

	app := &cli.App{
		Courses:  service.NewCourseService(courseRepo),
		Creation: service.NewCreationService(client, uow, courseRepo),
		Backend:  client,
		Feed:     feed,
	}

	// Detect interactive terminal for the TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

// websocketURL derives the push-feed URL from the backend endpoint,
// unless STUDIA_WS_URL overrides it.
func websocketURL(endpoint string) string {
	if v := os.Getenv("STUDIA_WS_URL"); v != "" {
		return v
	}
	ws := strings.Replace(endpoint, "https://", "wss://", 1)
	ws = strings.Replace(ws, "http://", "ws://", 1)
	return strings.TrimRight(ws, "/") + "/ws"
}
