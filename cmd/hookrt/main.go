package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hookrt/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┌─┐┬┌─┬─┐┌┬┐
  ╠═╣│ ││ │├┴┐├┬┘ │
  ╩ ╩└─┘└─┘┴ ┴┴└─ ┴
`

// Error output formats.
const (
	errorFormatPretty  = "pretty"
	errorFormatCompact = "compact"
	errorFormatJSON    = "json"
)

type rootOptions struct {
	noColor     bool
	errorFormat string
}

func main() {
	var opts rootOptions
	if err := rootCmd(&opts).Execute(); err != nil {
		printError(os.Stderr, err, opts.errorFormat)
		os.Exit(1)
	}
}

func rootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hookrt",
		Short: "A minimal hooks runtime for Go",
		Long: `hookrt runs components built from state and effect hooks.

Hook state lives in a slot store owned by an instance and is matched
to hook calls by their order in the render function:

  • State that persists across render cycles
  • Effects that fire when their dependencies change
  • Hook order validation on every cycle
  • Prometheus metrics and OpenTelemetry spans per cycle
  • A live inspector over HTTP and WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				errors.DisableColors()
			}
			switch opts.errorFormat {
			case errorFormatPretty, errorFormatCompact, errorFormatJSON:
				return nil
			default:
				return fmt.Errorf("--error-format must be pretty, compact or json, got %q", opts.errorFormat)
			}
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&opts.errorFormat, "error-format", errorFormatPretty, "Error output: pretty, compact or json")

	cmd.AddCommand(
		demoCmd(),
		inspectCmd(),
		configCmd(),
		errorsCmd(),
		versionCmd(),
	)

	return cmd
}

// printError writes err to w in the given format. Errors without a code
// are reported as CLI errors in the compact and JSON formats.
func printError(w io.Writer, err error, format string) {
	if format == "" || format == errorFormatPretty {
		errors.FprintError(w, err)
		return
	}

	var he *errors.HookError
	if !stderrors.As(err, &he) {
		he = errors.Newf(errors.CategoryCLI, "%s", err.Error())
	}
	if format == errorFormatJSON {
		fmt.Fprintln(w, he.FormatJSON())
		return
	}
	fmt.Fprintln(w, he.FormatCompact())
}

// printBanner prints the hookrt ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

func paint(code, text string) string {
	if !errors.ColorsEnabled() {
		return text
	}
	return code + text + "\033[0m"
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", paint("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", paint("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}
