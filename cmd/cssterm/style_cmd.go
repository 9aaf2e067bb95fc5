package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cssterm/cssterm/style"
)

func newStyleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style validate [file.css]",
		Short: "Parse a stylesheet and report its rule count and any diagnostics",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		sheet, imports, errs := style.NewParser(string(data), args[0]).Parse()
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		fmt.Printf("%s: %d rule(s), %d import(s), %d diagnostic(s)\n", args[0], len(sheet.Rules), len(imports), len(errs))
		if len(errs) > 0 {
			return fmt.Errorf("%s has %d diagnostic(s)", args[0], len(errs))
		}
		return nil
	}
	return cmd
}
