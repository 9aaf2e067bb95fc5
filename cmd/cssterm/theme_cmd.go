package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cssterm/cssterm/theme"
)

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme validate [file.json]",
		Short: "Load and resolve a theme document, reporting unresolved tokens",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		t, err := theme.LoadTheme(data)
		if err != nil {
			return err
		}
		if _, err := theme.Resolve(t, fileThemeLoader(args[0])); err != nil {
			return err
		}
		fmt.Printf("%s: %s (%s) resolves cleanly\n", args[0], t.Name, t.Mode)
		return nil
	}
	return cmd
}

// fileThemeLoader resolves a parent theme reference against sibling
// files in the same directory as the theme being validated.
func fileThemeLoader(path string) func(name string) (*theme.Theme, error) {
	dir := path[:len(path)-len(lastSegment(path))]
	return func(name string) (*theme.Theme, error) {
		data, err := os.ReadFile(dir + name + ".json")
		if err != nil {
			return nil, err
		}
		return theme.LoadTheme(data)
	}
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
