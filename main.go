package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"fensql/pkg/config"
	"fensql/pkg/database"
	"fensql/pkg/logging"
	"fensql/pkg/repl"
	"fensql/pkg/ui"
)

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fensql: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "fensql: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if err := logging.Init(cfg.Logging()); err != nil {
		return errors.Wrap(err, "init logging")
	}
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := database.NewDatabase(cfg.Name, cfg.Layout())
	defer db.Close()

	if cfg.TUI && !cfg.Quiet {
		showSplashScreen()
	}

	if cfg.Demo {
		if err := runDemoMode(ctx, db); err != nil {
			return err
		}
	}

	if cfg.Import != "" {
		if err := importData(ctx, db, cfg.Import); err != nil {
			return err
		}
	}

	if cfg.TUI {
		return startInteractiveMode(db)
	}

	shell := repl.New(db, os.Stdin, os.Stdout, repl.Config{Styled: cfg.Color})
	return shell.Run(ctx)
}

// showSplashScreen displays the welcome banner
func showSplashScreen() {
	splash := `
╔══════════════════════════════════════════╗
║                                          ║
║   ███████╗███████╗███╗   ██╗███████╗     ║
║   ██╔════╝██╔════╝████╗  ██║██╔════╝     ║
║   █████╗  █████╗  ██╔██╗ ██║███████╗     ║
║   ██╔══╝  ██╔══╝  ██║╚██╗██║╚════██║     ║
║   ██║     ███████╗██║ ╚████║███████║ QL  ║
║   ╚═╝     ╚══════╝╚═╝  ╚═══╝╚══════╝     ║
║                                          ║
║      one table, fourteen rows a page     ║
╚══════════════════════════════════════════╝
`

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	fmt.Fprintln(os.Stderr, style.Render(splash))
}

// startInteractiveMode launches the Bubble Tea UI
func startInteractiveMode(db *database.Database) error {
	p := tea.NewProgram(
		ui.NewModel(db),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run terminal ui")
	}
	return nil
}

// runDemoMode seeds the table with sample rows
func runDemoMode(ctx context.Context, db *database.Database) error {
	report, err := db.LoadDemo(ctx)
	if err != nil {
		return errors.Wrap(err, "load demo rows")
	}
	fmt.Fprintf(os.Stderr, "Demo: inserted %d rows into %s\n", report.Executed, db.Name())
	return nil
}

// importData runs the statements of a file, reporting the ones that fail
func importData(ctx context.Context, db *database.Database, path string) error {
	report, err := db.ImportFile(ctx, path)
	if err != nil {
		return errors.Wrapf(err, "import %s", path)
	}

	for _, f := range report.Failed {
		fmt.Fprintf(os.Stderr, "%s:%d: %s: %v\n", path, f.Line, f.Statement, f.Err)
	}
	fmt.Fprintf(os.Stderr, "Import: %d/%d statements executed\n", report.Executed, report.Total())
	return nil
}
