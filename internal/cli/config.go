package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds persistent defaults read from the config file. Flags override
// whatever the file provides; the password never lives in the file and comes
// from a flag, the REPOSHIP_PASSWORD environment variable, or the credential
// store.
type Config struct {
	Server     string `toml:"server"`     // server base address (e.g., "https://nexus.example.com")
	Repository string `toml:"repository"` // default target repository name
	Username   string `toml:"username"`   // default username
	Mode       string `toml:"mode"`       // default upload mode (all, releases, snapshots)
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields a zero Config; a present but
// unreadable or invalid file is an error, since the user's intent is clear.
func loadConfig(path string) (Config, error) {
	var cfg Config

	if path == "" {
		var err error
		path, err = configPath()
		if err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// merge fills empty flag values from the config file. Nil pointers are
// ignored so commands can merge only the fields they use.
func (c Config) merge(server, repository, username, mode *string) {
	if server != nil && *server == "" {
		*server = c.Server
	}
	if repository != nil && *repository == "" {
		*repository = c.Repository
	}
	if username != nil && *username == "" {
		*username = c.Username
	}
	if mode != nil && *mode == "" {
		*mode = c.Mode
	}
}
