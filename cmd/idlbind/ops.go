package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"idlbind/internal/diag"
	"idlbind/internal/idl"
	"idlbind/internal/ops"
	"idlbind/internal/types"
)

type opsPayload struct {
	Interface    string   `json:"interface"`
	Operation    string   `json:"operation"`
	Name         string   `json:"name"`
	Returns      string   `json:"returns"`
	Static       bool     `json:"static,omitempty"`
	Declaration  string   `json:"declaration"`
	Arguments    string   `json:"arguments"`
	Overloads    int      `json:"overloads"`
	Expanded     int      `json:"expanded"`
	CallbackArgs []string `json:"callback_args,omitempty"`
}

func newOpsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops [flags] <Interface> [operation...]",
		Short: "Merge overloaded operations into one signature",
		Long: `Merge the overloads of each operation of an interface into one calling
convention. Without operation names every operation is merged; "constructor"
selects the constructor.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runOps,
	}
	addInputFlags(cmd)
	cmd.Flags().Bool("future", false, "show the future form (callback parameters removed)")
	cmd.Flags().Bool("force-optional", false, "render named optionals positionally")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runOps(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatStr)
	if err != nil {
		return err
	}
	future, err := cmd.Flags().GetBool("future")
	if err != nil {
		return fmt.Errorf("failed to get future flag: %w", err)
	}
	forceOptional, err := cmd.Flags().GetBool("force-optional")
	if err != nil {
		return fmt.Errorf("failed to get force-optional flag: %w", err)
	}

	ws, err := openWorkspace(cmd.Context(), cmd, true)
	if err != nil {
		return err
	}
	iface, ok := ws.db.GetInterface(args[0])
	if !ok {
		return diag.Errorf(diag.CfgMissingInterface, args[0], "interface is not declared in %s", ws.database)
	}
	registry := types.NewRegistry(ws.db, idl.NewDefaultRenamer(), ws.table)
	// The first resolution failure is kept and returned once the signature
	// has been rendered.
	var renameErr error
	rename := func(id string) string {
		d, err := registry.Resolve(id)
		if err != nil {
			if renameErr == nil {
				renameErr = err
			}
			return id
		}
		return d.TargetType()
	}

	names := args[1:]
	if len(names) == 0 {
		names = iface.OperationNames()
	}
	payloads := make([]opsPayload, 0, len(names))
	for _, name := range names {
		var info *ops.Info
		if name == "constructor" {
			ctor, ok, err := ops.AnalyzeConstructor(iface, registry)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s declares no constructor", iface.ID)
			}
			info = ctor
		} else {
			if info, err = ops.MergeNamed(iface, name, registry); err != nil {
				return err
			}
		}
		if future {
			info = ops.ToFutureForm(info)
		}
		decl, err := info.ParametersDeclaration(rename, forceOptional)
		if err != nil {
			return err
		}
		if renameErr != nil {
			return renameErr
		}
		p := opsPayload{
			Interface:   iface.ID,
			Operation:   name,
			Name:        info.Name,
			Returns:     rename(info.TypeName),
			Static:      info.Static,
			Declaration: decl,
			Arguments:   info.ParametersAsArgumentList(-1),
			Overloads:   len(info.Operations),
			Expanded:    len(info.Overloads),
		}
		if name == "constructor" {
			p.Returns = info.ConstructorFullName(rename)
			p.Name = p.Returns
		}
		for _, cb := range info.CallbackArgs {
			p.CallbackArgs = append(p.CallbackArgs, cb.Name)
		}
		payloads = append(payloads, p)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payloads)
	}
	rows := make([][]string, 0, len(payloads))
	for _, p := range payloads {
		sig := p.Name + "(" + p.Declaration + ")"
		if p.Static {
			sig = "static " + sig
		}
		note := fmt.Sprintf("%d overloads", p.Overloads)
		if p.Expanded != p.Overloads {
			note += fmt.Sprintf(", %d expanded", p.Expanded)
		}
		rows = append(rows, []string{p.Returns, sig, dim(note)})
	}
	table(out, "", rows)
	return nil
}
