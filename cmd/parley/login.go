package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func newLoginCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in by pasting a token from the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			clientCfg, store, err := loadClient(*cfgPath, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sign in at %s and copy the CLI token.\n\n", clientCfg.LoginURL)
			qrterminal.GenerateHalfBlock(clientCfg.LoginURL, qrterminal.L, out)
			fmt.Fprint(out, "\nPaste token: ")

			reader := bufio.NewReader(cmd.InOrStdin())
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read token: %w", err)
			}
			token := strings.TrimSpace(line)
			if token == "" {
				return fmt.Errorf("no token entered")
			}

			if err := store.Save(token); err != nil {
				return err
			}
			logger.Info("token saved", "state_dir", clientCfg.StateDir)
			fmt.Fprintln(out, "Signed in. Run `parley` to start.")
			return nil
		},
	}
}

func newLogoutCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			_, store, err := loadClient(*cfgPath, logger)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
