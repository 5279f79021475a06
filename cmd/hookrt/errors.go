package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hookrt/internal/errors"
)

func errorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errors [code]",
		Short: "List error codes or explain one",
		Long: `Without arguments, list every error code with its message.
With a code, print its category, explanation and documentation link.

Examples:
  hookrt errors
  hookrt errors H002`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, code := range errors.GetAllCodes() {
					t, _ := errors.GetTemplate(code)
					fmt.Fprintf(out, "%s  %-7s  %s\n", code, t.Category, t.Message)
				}
				return nil
			}

			code := strings.ToUpper(args[0])
			t, ok := errors.GetTemplate(code)
			if !ok {
				return errors.Newf(errors.CategoryCLI, "unknown error code %q", args[0])
			}
			fmt.Fprintf(out, "%s: %s\n\n", code, t.Message)
			fmt.Fprintf(out, "  Category: %s\n", t.Category)
			fmt.Fprintf(out, "  Docs:     %s\n\n", t.DocURL)
			fmt.Fprintf(out, "  %s\n", t.Detail)
			return nil
		},
	}

	return cmd
}
