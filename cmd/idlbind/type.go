package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"idlbind/internal/driver"
	"idlbind/internal/idl"
	"idlbind/internal/types"
)

type typeDetail struct {
	driver.TypeReport
	Narrow     string `json:"narrow"`
	Parameter  string `json:"parameter"`
	ToNative   string `json:"to_native,omitempty"`
	ToTarget   string `json:"to_target"`
	NativeNote string `json:"native_error,omitempty"`
}

func newTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type [flags] <name>...",
		Short: "Resolve raw type names",
		Long: `Resolve raw IDL type names, e.g. "long", "sequence<Node>" or "DOMString[]",
and show their exposed, native and conversion forms.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runType,
	}
	addInputFlags(cmd)
	cmd.Flags().String("interface", "", "interface owning the converted value")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runType(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatStr)
	if err != nil {
		return err
	}
	owner, err := cmd.Flags().GetString("interface")
	if err != nil {
		return fmt.Errorf("failed to get interface flag: %w", err)
	}

	ws, err := openWorkspace(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	registry := types.NewRegistry(ws.db, idl.NewDefaultRenamer(), ws.table)

	details := make([]typeDetail, 0, len(args))
	for _, name := range args {
		d, err := registry.Resolve(name)
		if err != nil {
			return err
		}
		detail := typeDetail{
			TypeReport: driver.DescribeType(name, d),
			Narrow:     d.NarrowTargetType(),
			Parameter:  d.ParameterType(),
			ToTarget:   d.ConversionExpression("value", types.ConversionContext{Interface: owner}),
		}
		// Nested sequences have no native form; report it instead of failing.
		if info, err := d.ToNative(nil, owner); err != nil {
			detail.NativeNote = err.Error()
		} else {
			detail.ToNative = info.Call() + "(" + info.ArgExpr("value") + ")"
		}
		details = append(details, detail)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(details)
	}
	for i, d := range details {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, heading(d.Name)+" "+dim("("+d.Kind+")"))
		rows := [][]string{
			{"target", d.Target},
			{"narrow", d.Narrow},
			{"native", d.Native},
			{"parameter", d.Parameter},
		}
		if d.Implementation != "" {
			rows = append(rows, []string{"implementation", d.Implementation})
		}
		if d.Item != "" {
			rows = append(rows, []string{"item", d.Item})
		}
		if d.Getter != "" {
			rows = append(rows, []string{"accessors", d.Getter + " / " + d.Setter})
		}
		if d.NativeNote != "" {
			rows = append(rows, []string{"to native", "unsupported: " + d.NativeNote})
		} else {
			rows = append(rows, []string{"to native", d.ToNative})
		}
		rows = append(rows, []string{"to target", d.ToTarget})
		if len(d.Includes) > 0 {
			rows = append(rows, []string{"includes", strings.Join(d.Includes, " ")})
		}
		table(out, "  ", rows)
	}
	return nil
}
