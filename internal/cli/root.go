// Package cli wires the command line surface. The bare command runs the
// interactive picker and prints the chosen path on stdout, which lets
// the shell wrapper cd into it. Everything else goes to stderr.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"pavo/internal/lifecycle"
	"pavo/internal/storage"
	"pavo/internal/tui"
)

// NewRootCmd builds the pavo command tree.
func NewRootCmd() *cobra.Command {
	var tagFilter string

	cmd := &cobra.Command{
		Use:           "pavo",
		Short:         "Interactive bookmark selector for filesystem paths",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd, tagFilter)
		},
	}

	cmd.Flags().StringVarP(&tagFilter, "tag", "t", "", "only show bookmarks carrying this tag")

	cmd.AddCommand(NewAddCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewInitCmd())

	return cmd
}

// Execute runs the root command and maps errors to the exit code.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPicker(cmd *cobra.Command, tagFilter string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("the picker needs an interactive terminal, pipe usage is not supported")
	}

	manager, err := newManager()
	if err != nil {
		return err
	}

	// Drop unreachable bookmarks and expire stale ones before showing
	// anything. Failures here are warnings, the picker still runs.
	if _, err := manager.Clean(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: clean failed: %v\n", err)
	}
	if _, err := manager.AutoExpire(time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: auto-expire failed: %v\n", err)
	}

	app := tui.NewApp(tui.AppParams{
		Manager: manager,
		Tag:     tagFilter,
	})

	// The TUI renders on stderr so stdout carries only the result.
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithOutput(os.Stderr),
	)
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running picker: %w", err)
	}

	final := finalModel.(tui.App)
	if final.Cancelled() {
		return nil
	}
	if err := final.TouchErr(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record selection: %v\n", err)
	}
	if path := final.SelectedPath(); path != "" {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// newManager loads the store document and wraps it in a lifecycle
// manager. A broken document is fatal, the user has to fix it by hand.
func newManager() (*lifecycle.Manager, error) {
	path, err := storage.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	st := storage.NewYAMLStorage(path)
	store, err := st.Load()
	if err != nil {
		var cfgErr *storage.ConfigError
		if errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("%w\nfix or remove the file to continue", err)
		}
		return nil, err
	}

	return lifecycle.NewManager(store, st), nil
}
