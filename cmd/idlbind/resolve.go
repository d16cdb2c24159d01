package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"idlbind/internal/diag"
	"idlbind/internal/driver"
	"idlbind/internal/idl"
	"idlbind/internal/ui"
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [flags] [database.toml]",
		Short: "Resolve every interface of a database",
		Long: `Resolve every interface of a database: types, merged operation signatures,
constructors, callbacks, attribute conversions and annotations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runResolve,
	}
	addInputFlags(cmd)
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().Bool("no-cache", false, "disable the snapshot cache")
	cmd.Flags().String("cache-dir", "", "snapshot cache directory")
	cmd.Flags().Bool("drop-cache", false, "clear the snapshot cache before running")
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	cmd.Flags().Bool("members", false, "list members of every interface")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if err := cmd.Flags().Set("database", args[0]); err != nil {
			return err
		}
	}
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readOutputFormat(formatStr)
	if err != nil {
		return err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}
	members, err := cmd.Flags().GetBool("members")
	if err != nil {
		return fmt.Errorf("failed to get members flag: %w", err)
	}
	dropCache, err := cmd.Flags().GetBool("drop-cache")
	if err != nil {
		return fmt.Errorf("failed to get drop-cache flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	ctx := cmd.Context()
	ws, err := openWorkspace(ctx, cmd, true)
	if err != nil {
		return err
	}

	bag := diag.NewBag(maxDiagnostics)
	opts := driver.Options{
		Library:  ws.library,
		Jobs:     ws.jobs,
		Table:    ws.table,
		Docs:     ws.docs,
		Reporter: &diag.BagReporter{Bag: bag},
	}
	if ws.cache {
		cache, err := driver.OpenDiskCache("idlbind", ws.cacheDir)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		if dropCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to drop cache: %w", err)
			}
		}
		// Type overrides live in the config file, so it is part of the key.
		inputs := []string{ws.database, ws.settings.docs}
		if ws.manifest != nil {
			inputs = append(inputs, ws.manifest.Path)
		}
		key, err := driver.Fingerprint(ws.library, inputs...)
		if err != nil {
			return err
		}
		opts.Cache, opts.Key = cache, key
	}

	var report *driver.Report
	if format == "pretty" && shouldUseTUI(mode) {
		report, err = runWithUI(ctx, ws.db, opts)
	} else {
		report, err = driver.Run(ctx, ws.db, opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		renderReport(out, report, members)
	}

	bag.Sort()
	printDiagnostics(cmd.ErrOrStderr(), bag)
	if showTimings {
		printTimings(cmd.ErrOrStderr(), report)
	}
	return nil
}

type resolveOutcome struct {
	report *driver.Report
	err    error
}

// runWithUI runs the driver while a Bubble Tea program renders progress.
func runWithUI(ctx context.Context, db idl.Database, opts driver.Options) (*driver.Report, error) {
	events := make(chan driver.Event, 256)
	outcome := make(chan resolveOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		report, err := driver.Run(ctx, db, opts)
		outcome <- resolveOutcome{report: report, err: err}
		close(events)
	}()

	names := make([]string, 0, len(db.Interfaces()))
	for _, iface := range db.Interfaces() {
		names = append(names, iface.ID)
	}
	model := ui.NewProgressModel("resolving "+opts.Library, names, events)
	_, uiErr := tea.NewProgram(model, tea.WithOutput(os.Stdout)).Run()
	// Keep draining so the driver never blocks once the UI has quit.
	for range events {
	}
	res := <-outcome
	if uiErr != nil && res.err == nil {
		return res.report, uiErr
	}
	return res.report, res.err
}

func printDiagnostics(w io.Writer, bag *diag.Bag) {
	if bag.Len() == 0 {
		return
	}
	fmt.Fprintln(w, diag.FormatShort(bag.Items(), true))
}

func printTimings(w io.Writer, report *driver.Report) {
	if report.Cached {
		fmt.Fprintln(w, "timings: served from cache")
		return
	}
	fmt.Fprintf(w, "timings:\n")
	for _, p := range report.Timings.Phases {
		fmt.Fprintf(w, "  %-12s %7.2f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(w, "  %-12s %7.2f ms\n", "total", report.Timings.TotalMS)
}
