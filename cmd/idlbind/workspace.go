package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"idlbind/internal/config"
	"idlbind/internal/idl"
	"idlbind/internal/trace"
	"idlbind/internal/typetable"
)

// settings are the effective inputs of a command: flags over idlbind.toml
// over defaults.
type settings struct {
	manifest *config.Manifest
	cfg      config.Config

	database string
	docs     string
	library  string
	jobs     int
	cache    bool
	cacheDir string
}

// workspace is what the settings load into.
type workspace struct {
	settings
	db    idl.Database
	docs  idl.DocStore
	table *typetable.Table
}

var errNoDatabase = errors.New("no database given\nplease pass one explicitly or set [generator].database in idlbind.toml, e.g.:\n  idlbind resolve path/to/dom.toml")

// addInputFlags registers the flags shared by commands that read a database.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("database", "", "IDL database (TOML)")
	cmd.Flags().String("docs", "", "documentation store (JSON)")
	cmd.Flags().String("library", "", "library id used for docs and annotations")
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	s := settings{cfg: config.Default()}

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return s, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return s, err
		}
		s.manifest = &config.Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return s, err
		}
		m, ok, err := config.Discover(wd)
		if err != nil {
			return s, err
		}
		if ok {
			s.manifest = m
		}
	}
	if s.manifest != nil {
		s.cfg = s.manifest.Config
		s.database = s.manifest.Resolve(s.cfg.Generator.Database)
		s.docs = s.manifest.Resolve(s.cfg.Generator.Docs)
		s.cacheDir = s.manifest.Resolve(s.cfg.Cache.Dir)
	}
	s.library = s.cfg.Generator.Library
	s.jobs = s.cfg.Generator.Jobs
	s.cache = s.cfg.Cache.Enabled

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"database", &s.database},
		{"docs", &s.docs},
		{"library", &s.library},
		{"cache-dir", &s.cacheDir},
	} {
		if flag := cmd.Flags().Lookup(f.name); flag != nil && flag.Changed {
			*f.dst = flag.Value.String()
		}
	}
	if flag := cmd.Flags().Lookup("jobs"); flag != nil && flag.Changed {
		if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return s, err
		}
	}
	if flag := cmd.Flags().Lookup("no-cache"); flag != nil && flag.Changed {
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return s, err
		}
		s.cache = !noCache
	}
	return s, nil
}

// openWorkspace loads the database, docs and type table. requireDB makes a
// missing database an error; otherwise an empty database is used.
func openWorkspace(ctx context.Context, cmd *cobra.Command, requireDB bool) (*workspace, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "load")
	defer span.End("")

	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	ws := &workspace{settings: s, docs: idl.NopDocStore{}}

	switch {
	case s.database != "":
		db, err := idl.LoadDatabase(s.database)
		if err != nil {
			return nil, err
		}
		ws.db = db
		span.Set("interfaces", fmt.Sprint(len(db.Interfaces())))
	case requireDB:
		return nil, errNoDatabase
	default:
		ws.db = idl.NewMemDatabase()
	}

	if s.docs != "" {
		docs, err := idl.LoadDocStore(s.docs)
		if err != nil {
			return nil, err
		}
		ws.docs = docs
	}

	if ws.table, err = s.cfg.Table(typetable.Default()); err != nil {
		return nil, err
	}
	trace.Point(ctx, trace.ScopePass, "workspace", s.database)
	return ws, nil
}
