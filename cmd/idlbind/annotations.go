package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"idlbind/internal/annot"
	"idlbind/internal/idl"
)

func newAnnotationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotations [flags] <Interface> [member]",
		Short: "Show the annotations attached to an interface or member",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runAnnotations,
	}
	addInputFlags(cmd)
	cmd.Flags().String("type", "", "IDL type of the member; enables the compiled-backend annotations")
	cmd.Flags().Bool("no-comments", false, "omit documentation comments")
	cmd.Flags().String("indent", "  ", "indentation after each annotation line")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runAnnotations(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatStr)
	if err != nil {
		return err
	}
	idlType, err := cmd.Flags().GetString("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}
	noComments, err := cmd.Flags().GetBool("no-comments")
	if err != nil {
		return fmt.Errorf("failed to get no-comments flag: %w", err)
	}
	indent, err := cmd.Flags().GetString("indent")
	if err != nil {
		return fmt.Errorf("failed to get indent flag: %w", err)
	}

	ws, err := openWorkspace(cmd.Context(), cmd, false)
	if err != nil {
		return err
	}
	annotator := annot.NewAnnotator(ws.docs, idl.NewDefaultRenamer())

	iface, member := args[0], ""
	if len(args) == 2 {
		member = args[1]
	}
	list := annotator.WithComments(ws.library, iface, member)
	if noComments {
		list = annotator.Common(ws.library, iface, member)
	}
	if idlType != "" {
		list = append(list, annotator.NativeSpecific(idlType, iface, member)...)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	fmt.Fprint(out, strings.TrimRight(annot.Format(list, indent), " \t"))
	return nil
}
