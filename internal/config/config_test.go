package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("expected XDG-based dir, got %q", got)
	}
}

func TestDefaultConfigDir_Home(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/tmp/home")

	if got := DefaultConfigDir(); got != filepath.Join("/tmp/home", ".config", AppName) {
		t.Errorf("expected home-based dir, got %q", got)
	}
}

func TestNew_ExplicitDirWins(t *testing.T) {
	cfg, err := New("/custom/dir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != "/custom/dir" {
		t.Errorf("expected explicit dir, got %q", cfg.Dir)
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{Dir: "/cfg"}

	tests := []struct {
		got, want string
	}{
		{cfg.OAuthClientPath(), "/cfg/oauth_client.json"},
		{cfg.TokenPath(), "/cfg/token.json"},
		{cfg.ProfilePath(), "/cfg/profile.json"},
		{cfg.GuestIDPath(), "/cfg/guest_id"},
		{cfg.LocalDBPath(), "/cfg/tasks.db"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, tt.got)
		}
	}
}

func TestHasAndRemoveHelpers(t *testing.T) {
	cfg := &Config{Dir: t.TempDir()}

	if cfg.HasToken() || cfg.HasProfile() || cfg.HasGuestID() || cfg.HasOAuthClient() {
		t.Fatal("expected empty config dir to have no files")
	}

	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatalf("failed to write token: %v", err)
	}
	if err := os.WriteFile(cfg.ProfilePath(), []byte("{}"), 0600); err != nil {
		t.Fatalf("failed to write profile: %v", err)
	}

	if !cfg.HasToken() || !cfg.HasProfile() {
		t.Fatal("expected token and profile to be detected")
	}

	if err := cfg.RemoveToken(); err != nil {
		t.Fatalf("failed to remove token: %v", err)
	}
	if err := cfg.RemoveProfile(); err != nil {
		t.Fatalf("failed to remove profile: %v", err)
	}
	if cfg.HasToken() || cfg.HasProfile() {
		t.Error("expected files to be gone after removal")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", AppName)
	cfg := &Config{Dir: dir}

	if err := cfg.EnsureDir(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("expected dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}
}
