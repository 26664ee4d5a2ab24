package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/repoship/repoship/pkg/httputil"
	"github.com/repoship/repoship/pkg/nexus"
)

// metadataCacheTTL bounds how long repository metadata is served from the
// local cache before a new request goes out.
const metadataCacheTTL = 15 * time.Minute

// reposCommand creates the repos command with subcommands.
func (c *CLI) reposCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "Inspect repositories on the artifact server",
	}

	cmd.AddCommand(c.reposListCommand())
	cmd.AddCommand(c.reposInfoCommand())

	return cmd
}

// reposListCommand creates the "repos list" subcommand.
func (c *CLI) reposListCommand() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repositories visible to the current credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := c.newClient(ctx, &server)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Fetching repositories...")
			spinner.Start()
			repos, err := client.ListRepositories(ctx)
			if err != nil {
				spinner.StopWithError("Fetch failed")
				return fmt.Errorf("list repositories: %w", err)
			}
			spinner.Stop()

			if len(repos) == 0 {
				printInfo("No repositories visible on %s", server)
				return nil
			}

			fmt.Println(renderRepositoryTable(repos))
			printDetail("%d repositories on %s", len(repos), server)
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "artifact server base address")

	return cmd
}

// reposInfoCommand creates the "repos info" subcommand.
func (c *CLI) reposInfoCommand() *cobra.Command {
	var (
		server  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "info <repository>",
		Short: "Show details for one repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			client, err := c.newClient(ctx, &server)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Fetching repository "+name+"...")
			spinner.Start()
			repo, err := client.GetRepository(ctx, name, refresh)
			if err != nil {
				spinner.StopWithError("Fetch failed")
				return fmt.Errorf("get repository %s: %w", name, err)
			}
			spinner.Stop()

			for _, warning := range repo.Warnings() {
				printWarning("%s", warning)
			}

			printSuccess("%s", repo.Name)
			printKeyValue("Format", valueOrDash(repo.Format))
			printKeyValue("Type", valueOrDash(repo.Type))
			printKeyValue("Policy", repo.Policy().String())
			if repo.URL != "" {
				printKeyValue("URL", repo.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "artifact server base address")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the metadata cache")

	return cmd
}

// newClient builds a nexus client for read-only commands. The server comes
// from the flag or the config file; credentials come from the store when
// present, otherwise the request goes out anonymously since many servers
// allow unauthenticated reads.
func (c *CLI) newClient(ctx context.Context, server *string) (*nexus.Client, error) {
	cfg, err := loadConfig("")
	if err != nil {
		return nil, err
	}
	cfg.merge(server, nil, nil, nil)

	if *server == "" {
		return nil, fmt.Errorf("no server configured (use --server or set it in the config file)")
	}

	var creds nexus.Credentials
	stored, err := loadStoredCredentials(ctx, *server)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		creds = nexus.Credentials{Username: stored.Username, Password: stored.Password}
	} else {
		c.Logger.Debug("No stored credentials, proceeding anonymously", "server", *server)
	}

	opts := []nexus.Option{}
	if dir, err := cacheDir(); err == nil {
		if cache, err := httputil.NewCache(dir, metadataCacheTTL); err == nil {
			opts = append(opts, nexus.WithCache(cache))
		}
	}

	return nexus.NewClient(*server, creds, opts...), nil
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
