package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"tick/internal/config"
	"tick/internal/engine"
	"tick/internal/storage"
	"tick/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("tick %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.LoadOrCreate(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The SQLite backend is preferred; when it cannot be opened the file
	// backend serves alone and the app still works.
	primary, err := storage.OpenSQLite(filepath.Join(cfg.DataDir, config.DBFileName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sqlite unavailable, using file storage: %v\n", err)
		primary = nil
	}
	adapter := storage.NewAdapter(backendOrNil(primary), storage.NewFile(cfg.DataDir))
	defer adapter.Close()

	// Hydrate before the program starts: the engine is single-writer and
	// must not be touched from a command goroutine while the loop runs.
	eng := engine.New(adapter)
	eng.Load()

	app := ui.NewApp(eng, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// backendOrNil keeps a typed nil *storage.SQLite from masquerading as a
// non-nil Backend interface value.
func backendOrNil(s *storage.SQLite) storage.Backend {
	if s == nil {
		return nil
	}
	return s
}
