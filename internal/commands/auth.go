package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/api"
	"github.com/fintrail-dev/fintrail/internal/session"
)

func newLoginCommand(a *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			creds, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			a.client.SetCredentials(creds)

			if err := a.store.Save(session.State{
				Token:   creds.Token,
				Email:   creds.User.Email,
				SavedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Logged in as %s <%s>\n", creds.User.Name, creds.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var name string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" || password == "" {
				return fmt.Errorf("name, email and password are required")
			}

			creds, err := a.client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			a.client.SetCredentials(creds)

			if err := a.store.Save(session.State{
				Token:   creds.Token,
				Email:   creds.User.Email,
				SavedAt: time.Now().UTC(),
			}); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Registered %s <%s>\n", creds.User.Name, creds.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			a.client.ClearCredentials()
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session's user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}
			user := a.client.Credentials().User
			fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

// promptYesNo asks for interactive confirmation on stdin.
func (a *app) promptYesNo(prompt string) (bool, error) {
	fmt.Fprintf(a.out, "%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(a.in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("reading confirmation: %w", err)
		}
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

// notify prints a transient-style notification. Server-rejected requests
// surface their message verbatim.
func (a *app) notify(err error) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		fmt.Fprintf(a.out, "! %s\n", apiErr.Message)
		return
	}
	fmt.Fprintf(a.out, "! %v\n", err)
}
