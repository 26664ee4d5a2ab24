package cli

import (
	"io"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"push", "repos", "login", "logout", "whoami", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestResolveCredentialsFromFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c := New(io.Discard, LogInfo)

	creds, err := c.resolveCredentials(t.Context(), "https://nexus.example.com", "deploy", "hunter2")
	if err != nil {
		t.Fatalf("resolveCredentials() error: %v", err)
	}
	if creds.Username != "deploy" || creds.Password != "hunter2" {
		t.Errorf("creds = %+v", creds)
	}
}

func TestResolveCredentialsFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(passwordEnv, "from-env")
	c := New(io.Discard, LogInfo)

	creds, err := c.resolveCredentials(t.Context(), "https://nexus.example.com", "deploy", "")
	if err != nil {
		t.Fatalf("resolveCredentials() error: %v", err)
	}
	if creds.Password != "from-env" {
		t.Errorf("password = %q, want env value", creds.Password)
	}
}

func TestResolveCredentialsFlagBeatsEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(passwordEnv, "from-env")
	c := New(io.Discard, LogInfo)

	creds, err := c.resolveCredentials(t.Context(), "https://nexus.example.com", "deploy", "from-flag")
	if err != nil {
		t.Fatalf("resolveCredentials() error: %v", err)
	}
	if creds.Password != "from-flag" {
		t.Errorf("password = %q, explicit flag should win", creds.Password)
	}
}

func TestResolveCredentialsMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(passwordEnv, "")
	c := New(io.Discard, LogInfo)

	if _, err := c.resolveCredentials(t.Context(), "https://nexus.example.com", "", ""); err == nil {
		t.Error("resolveCredentials() without any source should fail")
	}
}
