package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/parleychat/parley/core"
	"github.com/parleychat/parley/graphql"
	"github.com/parleychat/parley/internal/appconfig"
	"github.com/parleychat/parley/internal/eventbus"
	"github.com/parleychat/parley/internal/notifier"
	"github.com/parleychat/parley/internal/tokenstore"
	"github.com/parleychat/parley/schema"
	"github.com/parleychat/parley/session"
	"github.com/parleychat/parley/socket"
)

// runClient wires the collaborators together and hands control to the
// Bubble Tea runtime until the user quits.
func runClient(cmd *cobra.Command, cfgPath string) error {
	logger := pslog.Ctx(cmd.Context())
	clientCfg, store, err := loadClient(cfgPath, logger)
	if err != nil {
		return err
	}

	token, found, err := store.Load()
	if err != nil {
		return err
	}
	if !found {
		logger.Info("no saved session, starting signed out")
	}

	api, err := graphql.NewClient(clientCfg.APIURL, logger)
	if err != nil {
		return err
	}
	sess := session.New(token, api, clientCfg.TokenURL, logger)

	bus := eventbus.New(logger)
	conn, err := socket.New(clientCfg.SocketURL, bus, logger)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	shell := core.New(core.Options{
		Config:  clientCfg,
		Session: sess,
		Socket:  conn,
		Store:   store,
		Logger:  logger,
	})

	notif := notifier.New(bus, shell.Repo(), clientCfg.Notifications)
	notif.Start()
	defer notif.Stop()

	program := tea.NewProgram(shell, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}

// loadClient resolves the on-disk config into runtime settings plus the
// encrypted token store under its state directory.
func loadClient(cfgPath string, logger pslog.Logger) (schema.ClientConfig, *tokenstore.Store, error) {
	cfg, err := appconfig.Load(cfgPath)
	if err != nil {
		return schema.ClientConfig{}, nil, err
	}
	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return schema.ClientConfig{}, nil, err
	}
	store, err := tokenstore.NewStoreWithLogger(clientCfg.StateDir, logger)
	if err != nil {
		return schema.ClientConfig{}, nil, err
	}
	return clientCfg, store, nil
}
