package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/repoship/repoship/pkg/credentials"
	"github.com/repoship/repoship/pkg/nexus"
)

// loginCommand creates the login command.
func (c *CLI) loginCommand() *cobra.Command {
	var (
		server   string
		username string
		password string
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials for an artifact server",
		Long: `Verify credentials against the server and save them locally.

The password is read from --password or the ` + passwordEnv + ` environment
variable. Credentials are stored per server under
~/.config/repoship/credentials/ and picked up automatically by other
commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			cfg.merge(&server, nil, &username, nil)

			if server == "" {
				return fmt.Errorf("no server given (use --server)")
			}
			if username == "" {
				return fmt.Errorf("no username given (use --username)")
			}
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			if password == "" {
				return fmt.Errorf("no password given (use --password or $%s)", passwordEnv)
			}

			creds := nexus.Credentials{Username: username, Password: password}
			if !noVerify {
				if err := c.verifyCredentials(ctx, server, creds); err != nil {
					return err
				}
			}

			store, err := credentials.NewFileStore("")
			if err != nil {
				return err
			}
			if err := store.Set(ctx, credentials.New(server, username, password)); err != nil {
				return fmt.Errorf("save credentials: %w", err)
			}

			printSuccess("Logged in to %s as %s", server, StyleHighlight.Render(username))
			printDetail("Stored at %s", store.Path(server))
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "artifact server base address")
	cmd.Flags().StringVarP(&username, "username", "u", "", "server username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "server password (or $"+passwordEnv+")")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "store without checking against the server")

	return cmd
}

// logoutCommand creates the logout command.
func (c *CLI) logoutCommand() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials for an artifact server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			cfg.merge(&server, nil, nil, nil)

			if server == "" {
				return fmt.Errorf("no server given (use --server)")
			}

			store, err := credentials.NewFileStore("")
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), server); err != nil {
				return fmt.Errorf("delete credentials: %w", err)
			}
			printSuccess("Logged out from %s", server)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "artifact server base address")

	return cmd
}

// whoamiCommand creates the whoami command.
func (c *CLI) whoamiCommand() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored credentials for an artifact server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			cfg.merge(&server, nil, nil, nil)

			if server == "" {
				return fmt.Errorf("no server given (use --server)")
			}

			stored, err := loadStoredCredentials(ctx, server)
			if err != nil {
				return err
			}
			if stored == nil {
				return fmt.Errorf("not logged in to %s (run 'repoship login' first)", server)
			}

			creds := nexus.Credentials{Username: stored.Username, Password: stored.Password}
			if err := c.verifyCredentials(ctx, server, creds); err != nil {
				return err
			}

			printSuccess("Server Session")
			printKeyValue("Server", server)
			printKeyValue("Username", stored.Username)
			printKeyValue("Logged in", stored.CreatedAt.Format("Jan 2, 2006"))
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "artifact server base address")

	return cmd
}

// verifyCredentials checks a username/password pair by listing repositories,
// which any authenticated user may do.
func (c *CLI) verifyCredentials(ctx context.Context, server string, creds nexus.Credentials) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Verifying credentials...")
	spinner.Start()

	client := nexus.NewClient(server, creds)
	if _, err := client.ListRepositories(ctx); err != nil {
		spinner.StopWithError("Credentials rejected")
		return fmt.Errorf("verify credentials: %w", err)
	}
	spinner.Stop()
	return nil
}

// loadStoredCredentials reads the credential store entry for server.
// Returns nil, nil when nothing is stored.
func loadStoredCredentials(ctx context.Context, server string) (*credentials.Credentials, error) {
	store, err := credentials.NewFileStore("")
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	return store.Get(ctx, server)
}
