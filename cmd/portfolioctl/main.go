// Command portfolioctl is the admin console for the portfolio API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/console"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type app struct {
	apiURL  string
	timeout time.Duration
	con     *console.Console
}

func main() {
	_ = godotenv.Load()

	a := &app{}
	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Manage contents, books and the contact inbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			client := console.NewClient(a.apiURL)
			client.Token = loadToken()
			a.con = console.New(client)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr("PORTFOLIO_API_URL", "http://localhost:3000"), "API base URL")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 30*time.Second, "per-command timeout")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.statsCmd(),
		a.contentsCmd(),
		a.booksCmd(),
		a.contactsCmd(),
	)

	if err := root.Execute(); err != nil {
		var apiErr *console.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			fmt.Fprintln(os.Stderr, "error: not logged in or session expired; run `portfolioctl login`")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			exp, err := a.con.Client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := saveToken(a.con.Client.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in until %s\n", exp.Local().Format(time.RFC1123))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", os.Getenv("ADMIN_EMAIL"), "admin email")
	cmd.Flags().StringVar(&password, "password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Client.Logout(ctx); err != nil {
				return err
			}
			_ = os.Remove(tokenPath())
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	var server bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			if server {
				s, err := a.con.Client.ServerStats(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "contents=%d books=%d contacts=%d unread=%d\n", s.Contents, s.Books, s.Contacts, s.UnreadMessages)
				return nil
			}
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}
	cmd.Flags().BoolVar(&server, "server", false, "ask the server instead of counting locally")
	return cmd
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// PORTFOLIO_TOKEN wins over the token file written by login.
func loadToken() string {
	if t := os.Getenv("PORTFOLIO_TOKEN"); t != "" {
		return t
	}
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func saveToken(tok string) error {
	p := tokenPath()
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(tok+"\n"), 0o600)
}

func tokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "portfolioctl", "token")
}
