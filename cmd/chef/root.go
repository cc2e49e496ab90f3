package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hmchef/hmchef/config"
	"github.com/hmchef/hmchef/internal/client"
	"github.com/hmchef/hmchef/internal/engine"
	"github.com/hmchef/hmchef/internal/kvstore"
)

// app bundles the wired engine for one command invocation.
type app struct {
	cfg    *config.ClientConfig
	store  *kvstore.SQLiteStore
	engine *engine.Engine
	search *client.SearchClient
}

// newApp opens the local store, wires the engine and restores any persisted
// session, which also performs the initial collection load.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	store, err := kvstore.OpenSQLite(filepath.Join(cfg.DataDir, "chef.db"))
	if err != nil {
		return nil, err
	}

	api := client.New(cfg.APIBaseURL)
	eng := engine.New(store, api, api, api)

	if err := eng.Session.Restore(ctx); err != nil {
		// A failed restore or reload is recoverable: the session may be
		// anonymous or the collection empty, but every command still works.
		slog.Warn("session restore incomplete", "error", err)
	}

	return &app{
		cfg:    cfg,
		store:  store,
		engine: eng,
		search: client.NewSearchClient(cfg.SearchBaseURL),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("failed to close local store", "error", err)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "chef",
		Short:         "Personal recipe catalog with offline and synced modes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newListCommand(),
		newAddCommand(),
		newDeleteCommand(),
		newSearchCommand(),
	)

	return root
}

// runWithApp wires the engine, runs fn and tears down again. Every
// subcommand funnels through here.
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	return fn(ctx, a)
}
