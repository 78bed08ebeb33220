package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dexter-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/dexter-cli/internal/logger"
)

// tuiLogFile is where logs go while the TUI owns the terminal.
var tuiLogFile string

// newTUIProgram builds the bubbletea program. Tests replace it to avoid
// taking over the terminal.
var newTUIProgram = func(app *tui.App, cmd *cobra.Command) interface{ Run() (tea.Model, error) } {
	return tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(commandContext(cmd)),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Dexter.

Starts on the login form unless a session exists, then shows the catalog
as coloured cards.

Controls:
  /        - Search by name (enter submits, empty restores the list)
  ↑/k, ↓/j - Navigate cards
  Enter    - Open details
  Esc      - Close details / clear search
  m        - Load more
  L        - Log out
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "write logs to this file while the UI runs")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(catalogService, searchService, sessionService)
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	restore, err := redirectLogs(tuiLogFile)
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	watchConfig(ctx)

	app.WithContext(ctx)

	if _, err := newTUIProgram(app, cmd).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends log output to path, or discards it when path is empty,
// so log lines do not corrupt the alternate screen.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
