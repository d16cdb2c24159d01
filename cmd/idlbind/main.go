package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"idlbind/internal/diag"
	"idlbind/internal/version"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "idlbind",
		Short: "Resolve IDL types, overloads and annotations for binding generation",
		Long: `idlbind resolves the types, merged operation signatures, annotations and
value conversions that a binding generator needs for an IDL database.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupRun,
		PersistentPostRun: func(*cobra.Command, []string) { finishRun(nil) },
	}

	root.PersistentFlags().String("config", "", "path to idlbind.toml (default: search upwards)")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")

	root.AddCommand(
		newResolveCmd(),
		newTypeCmd(),
		newOpsCmd(),
		newAnnotationsCmd(),
		newConversionCmd(),
		newVersionCmd(),
	)
	return root
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		finishRun(err)
		printError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// setupRun applies the global flags before any command runs.
func setupRun(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor, err := readColorMode(mode)
	if err != nil {
		return err
	}
	color.NoColor = !useColor
	return setupTracing(cmd)
}

func printError(w io.Writer, err error) {
	if de, ok := diag.AsError(err); ok {
		fmt.Fprintln(w, color.New(color.FgRed, color.Bold).Sprint("error: ")+err.Error())
		for _, n := range de.Diag.Notes {
			fmt.Fprintf(w, "  note: %s: %s\n", n.Subject, n.Msg)
		}
		return
	}
	fmt.Fprintln(w, color.New(color.FgRed, color.Bold).Sprint("error: ")+err.Error())
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
