package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/repoship/repoship/pkg/nexus"
	"github.com/repoship/repoship/pkg/publish"
)

// pushFlags collects everything the push command needs for one run.
type pushFlags struct {
	server     string
	repository string
	dir        string
	mode       string
	username   string
	password   string
	timeout    time.Duration
	dryRun     bool
	configFile string
}

// pushCommand creates the push command, the main operation of repoship.
func (c *CLI) pushCommand() *cobra.Command {
	var flags pushFlags

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload a local Maven repository to a remote repository",
		Long: `Walk a local Maven-style repository tree and upload every artifact to the
target repository.

The target repository's version policy (release, snapshot, or mixed) is read
from the server before the walk begins; artifacts whose versions the policy
excludes are skipped. With --mode the upload can additionally be limited to
releases or snapshots only.

Examples:
  repoship push --server https://nexus.example.com --repository maven-releases
  repoship push --repository maven-snapshots --mode snapshots --dir ./repo
  repoship push --repository maven-releases --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPush(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.server, "server", "", "artifact server base address")
	cmd.Flags().StringVarP(&flags.repository, "repository", "r", "", "target repository name (interactive selection if omitted)")
	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "local repository root (default ~/.m2/repository)")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "which versions to upload: all, releases, or snapshots (default all)")
	cmd.Flags().StringVarP(&flags.username, "username", "u", "", "server username")
	cmd.Flags().StringVarP(&flags.password, "password", "p", "", "server password (prefer $"+passwordEnv+" or 'repoship login')")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", nexus.DefaultUploadTimeout, "timeout for a single upload")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "walk and classify without uploading anything")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "config file (default ~/.config/repoship/config.toml)")

	return cmd
}

func (c *CLI) runPush(ctx context.Context, flags pushFlags) error {
	cfg, err := loadConfig(flags.configFile)
	if err != nil {
		return err
	}
	cfg.merge(&flags.server, &flags.repository, &flags.username, &flags.mode)

	if flags.server == "" {
		return fmt.Errorf("no server configured (use --server or set it in the config file)")
	}

	mode, err := publish.ParseMode(flags.mode)
	if err != nil {
		return err
	}

	root := flags.dir
	if root == "" {
		if root, err = defaultLocalRepo(); err != nil {
			return err
		}
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("local repository root %q is not a directory", root)
	}

	creds, err := c.resolveCredentials(ctx, flags.server, flags.username, flags.password)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	c.Logger.Debug("Starting run", "run_id", runID, "server", flags.server, "mode", mode.String())

	client := nexus.NewClient(flags.server, creds,
		nexus.WithUploadTimeout(flags.timeout),
		nexus.WithHeader("X-Run-Id", runID),
	)

	if flags.repository == "" {
		selected, err := c.selectRepository(ctx, client)
		if err != nil {
			return err
		}
		if selected == "" {
			printDetail("No repository selected")
			return nil
		}
		flags.repository = selected
	}

	spinner := newSpinnerWithContext(ctx, "Checking repository "+flags.repository+"...")
	spinner.Start()
	policy, repo, err := client.ResolvePolicy(ctx, flags.repository)
	if err != nil {
		spinner.StopWithError("Repository check failed")
		return fmt.Errorf("resolve repository %s: %w", flags.repository, err)
	}
	spinner.Stop()

	if repo != nil {
		for _, warning := range repo.Warnings() {
			printWarning("%s", warning)
		}
	} else {
		printWarning("Repository metadata unavailable; inferred %s policy from the name", policy)
	}
	printInfo("Repository %s accepts %s versions", StyleHighlight.Render(flags.repository), policy)

	var uploader nexus.Uploader = client
	if flags.dryRun {
		printInfo("Dry run: nothing will be uploaded")
		uploader = &publish.DryRun{Logger: c.Logger}
	}

	publisher := &publish.Publisher{
		Uploader:   uploader,
		Logger:     c.Logger,
		Repository: flags.repository,
		Mode:       mode,
		Policy:     policy,
	}

	start := time.Now()
	tally, err := publisher.Run(ctx, root)
	if err != nil {
		if errors.Is(err, publish.ErrModeConflict) {
			printError("Nothing to do: %v", err)
		}
		return err
	}

	printNewline()
	printSuccess("Publish finished (%s)", time.Since(start).Round(time.Millisecond))
	printTally(tally.Succeeded, tally.Failed, tally.Skipped)
	if tally.Failed > 0 {
		printWarning("%d files failed to upload; see the log above", tally.Failed)
	}
	return nil
}

// resolveCredentials picks credentials in order of explicitness: flags
// first, then the password environment variable, then the credential store.
func (c *CLI) resolveCredentials(ctx context.Context, server, username, password string) (nexus.Credentials, error) {
	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	if username != "" && password != "" {
		return nexus.Credentials{Username: username, Password: password}, nil
	}

	stored, err := loadStoredCredentials(ctx, server)
	if err != nil {
		return nexus.Credentials{}, err
	}
	if stored != nil {
		if username == "" {
			username = stored.Username
		}
		if password == "" && username == stored.Username {
			password = stored.Password
		}
	}
	if username == "" {
		return nexus.Credentials{}, fmt.Errorf("no credentials for %s (use --username/--password or 'repoship login')", server)
	}
	return nexus.Credentials{Username: username, Password: password}, nil
}

// defaultLocalRepo returns the conventional local repository location,
// ~/.m2/repository.
func defaultLocalRepo() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".m2", "repository"), nil
}
