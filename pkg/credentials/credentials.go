// Package credentials stores artifact-server credentials for the CLI.
//
// Credentials are saved per server as JSON files under
// ~/.config/repoship/credentials/, created with owner-only permissions.
// `repoship login` writes them, `repoship push` reads them when no explicit
// credentials are given, and `repoship logout` removes them.
package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Credentials identify one user on one artifact server.
type Credentials struct {
	Server    string    `json:"server"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates credentials for the given server, stamped with the current time.
func New(server, username, password string) *Credentials {
	return &Credentials{
		Server:    server,
		Username:  username,
		Password:  password,
		CreatedAt: time.Now(),
	}
}

// FileStore keeps one JSON file per server in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based credential store.
// If baseDir is empty, defaults to ~/.config/repoship/credentials/.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "repoship", "credentials")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create credentials dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Get retrieves credentials for a server. Returns nil, nil when none are
// stored.
func (s *FileStore) Get(ctx context.Context, server string) (*Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(server))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return &creds, nil
}

// Set stores credentials, replacing any previous entry for the same server.
func (s *FileStore) Set(ctx context.Context, creds *Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.Path(creds.Server), data, 0o600); err != nil {
		return fmt.Errorf("write credentials file: %w", err)
	}
	return nil
}

// Delete removes stored credentials for a server. Deleting credentials that
// do not exist is not an error.
func (s *FileStore) Delete(ctx context.Context, server string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(server)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

// Path returns the file path credentials for server are stored at.
func (s *FileStore) Path(server string) string {
	return filepath.Join(s.baseDir, fileKey(server)+".json")
}

// fileKey derives a filesystem-safe name from a server address, preferring
// the host portion of a URL.
func fileKey(server string) string {
	if u, err := url.Parse(server); err == nil && u.Host != "" {
		server = u.Host
	}
	replacer := strings.NewReplacer(":", "_", "/", "_", "\\", "_")
	return replacer.Replace(server)
}
