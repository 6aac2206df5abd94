package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"pavo/internal/shell"
	"pavo/internal/storage"
)

// NewAddCmd builds the add subcommand. Without an argument it registers
// the current directory.
func NewAddCmd() *cobra.Command {
	var persist bool

	cmd := &cobra.Command{
		Use:   "add [dir]",
		Short: "Register a directory or file as a bookmark",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			var dir string
			if len(args) > 0 {
				dir = args[0]
			}

			path, err := manager.Add(dir, persist)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&persist, "persist", "p", false, "protect the bookmark from cleanup and expiry")

	return cmd
}

// NewCleanCmd builds the clean subcommand.
func NewCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove bookmarks whose paths no longer exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			removed, err := manager.Clean()
			if err != nil {
				return err
			}
			for _, path := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
			}
			return nil
		},
	}
}

// NewConfigCmd builds the config subcommand, which opens the store
// document in $EDITOR.
func NewConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Open the bookmark file in your editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := os.Getenv("EDITOR")
			if editor == "" {
				return errors.New("EDITOR environment variable is not set")
			}

			path, err := storage.DefaultConfigPath()
			if err != nil {
				return err
			}

			edit := exec.Command(editor, path)
			edit.Stdin = os.Stdin
			edit.Stdout = os.Stdout
			edit.Stderr = os.Stderr
			if err := edit.Run(); err != nil {
				return fmt.Errorf("running editor: %w", err)
			}
			return nil
		},
	}
}

// NewInitCmd builds the init subcommand, printing shell integration.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <shell>",
		Short: "Print the shell integration script (bash, zsh, fish)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := shell.InitScript(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}
}
