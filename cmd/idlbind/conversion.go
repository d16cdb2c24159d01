package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"idlbind/internal/annot"
)

type conversionPayload struct {
	Found bool   `json:"found"`
	Key   string `json:"key,omitempty"`
	*annot.Conversion
}

func newConversionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversion [flags] <idlType> <get|set> <Interface> [member]",
		Short: "Look up the value conversion for a member",
		Long: `Look up the conversion applied to values crossing the binding boundary.
Keys are tried from most to least specific: type and member, any type and
member, type and interface, then the type alone.`,
		Args: cobra.RangeArgs(3, 4),
		RunE: runConversion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runConversion(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatStr)
	if err != nil {
		return err
	}
	dir, err := annot.ParseDirection(args[1])
	if err != nil {
		return err
	}
	member := ""
	if len(args) == 4 {
		member = args[3]
	}

	key, conv, ok := annot.DefaultConversions().FindKey(args[0], dir, args[2], member)
	payload := conversionPayload{Found: ok, Key: key, Conversion: conv}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	switch {
	case ok:
		table(out, "", [][]string{
			{"key", key},
			{"function", conv.Function},
			{"input", conv.InputType},
			{"output", conv.OutputType},
		})
	case key != "":
		fmt.Fprintf(out, "no conversion (disabled by %q)\n", key)
	default:
		fmt.Fprintln(out, "no conversion")
	}
	return nil
}
