package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bingo/shop-console/internal/core/service"
)

var (
	loginUsername string
	loginPassword string
)

// loginCmd exchanges operator credentials for a token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the shop API",
	Long: `Log in to the shop API and store the token for later commands.

Missing --username or --password values are read from stdin.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

// logoutCmd forgets the stored token
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

// statusCmd reports whether a token is stored for the API
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are logged in",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "operator username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "operator password")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ws, _, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	username, password := loginUsername, loginPassword
	if username == "" {
		if username, err = prompt(in, out, "Username: "); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = prompt(in, out, "Password: "); err != nil {
			return err
		}
	}

	if _, err := ws.Login.Submit(orBackground(cmd.Context()), username, password); err != nil {
		return errors.New(ws.Login.Snapshot().Error)
	}
	fmt.Fprintf(out, "Logged in as %s.\n", username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	ws, _, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	if err := ws.Logout(orBackground(cmd.Context())); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	ws, cfg, err := openWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if ws.Controller.Resolve(service.RouteDashboard) == service.RouteDashboard {
		fmt.Fprintf(out, "Logged in to %s.\n", cfg.APIURL)
		return nil
	}
	fmt.Fprintf(out, "Not logged in to %s.\n", cfg.APIURL)
	return nil
}
