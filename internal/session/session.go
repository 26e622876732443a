// Package session resolves the current owner identity and storage mode.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"taskdeck/internal/config"
)

// Mode selects which storage backend a session uses.
type Mode string

const (
	// ModeGuest stores tasks in the local database.
	ModeGuest Mode = "guest"

	// ModeFederated stores tasks in the remote document store under the
	// identity-provider-issued subject.
	ModeFederated Mode = "federated"
)

// Profile is the federated identity persisted at login.
type Profile struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
}

// Session is the resolved identity for one CLI invocation.
// A zero Session is unauthenticated.
type Session struct {
	ownerID string
	mode    Mode
	email   string
}

// OwnerID returns the current owner id, or false if unauthenticated.
func (s *Session) OwnerID() (string, bool) {
	if s == nil || s.ownerID == "" {
		return "", false
	}
	return s.ownerID, true
}

// Mode returns the current storage mode, or false if unauthenticated.
func (s *Session) Mode() (Mode, bool) {
	if s == nil || s.mode == "" {
		return "", false
	}
	return s.mode, true
}

// Email returns the federated account email, if any.
func (s *Session) Email() string {
	if s == nil {
		return ""
	}
	return s.email
}

// Resolve determines the current session from stored state.
// A stored profile plus token means a federated session; otherwise a stored
// guest id means a guest session; otherwise the session is unauthenticated
// (both accessors report false).
func Resolve(cfg *config.Config) (*Session, error) {
	if cfg.HasProfile() && cfg.HasToken() {
		profile, err := LoadProfile(cfg)
		if err != nil {
			return nil, err
		}
		return &Session{ownerID: profile.Sub, mode: ModeFederated, email: profile.Email}, nil
	}

	if cfg.HasGuestID() {
		data, err := os.ReadFile(cfg.GuestIDPath())
		if err != nil {
			return nil, fmt.Errorf("failed to read guest id: %w", err)
		}
		id := strings.TrimSpace(string(data))
		if id == "" {
			return &Session{}, nil
		}
		return &Session{ownerID: id, mode: ModeGuest}, nil
	}

	return &Session{}, nil
}

// EnterAsGuest creates a guest identity if none exists and returns the
// resulting guest session. An existing guest id is reused, so guest tasks
// survive across invocations.
func EnterAsGuest(cfg *config.Config) (*Session, error) {
	if cfg.HasGuestID() {
		data, err := os.ReadFile(cfg.GuestIDPath())
		if err != nil {
			return nil, fmt.Errorf("failed to read guest id: %w", err)
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return &Session{ownerID: id, mode: ModeGuest}, nil
		}
	}

	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	id := "guest-" + uuid.NewString()
	if err := os.WriteFile(cfg.GuestIDPath(), []byte(id+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("failed to save guest id: %w", err)
	}
	return &Session{ownerID: id, mode: ModeGuest}, nil
}

// LoadProfile reads the stored federated identity.
func LoadProfile(cfg *config.Config) (Profile, error) {
	data, err := os.ReadFile(cfg.ProfilePath())
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile.json: %w", err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("invalid profile.json: %w", err)
	}
	if profile.Sub == "" {
		return Profile{}, fmt.Errorf("profile.json has no subject")
	}
	return profile, nil
}

// SaveProfile persists the federated identity with mode 0600.
func SaveProfile(cfg *config.Config, profile Profile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.ProfilePath(), data, 0600)
}
