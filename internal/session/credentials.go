package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Credential is what survives a restart of the client.
type Credential struct {
	Token  string    `json:"token"`
	Email  string    `json:"email"`
	UserID uuid.UUID `json:"user_id"`
}

// CredentialStore persists the signed-in credential. Load returns nil, nil
// when nothing is stored.
type CredentialStore interface {
	Load() (*Credential, error)
	Save(*Credential) error
	Remove() error
}

// FileStore keeps the credential in a JSON file readable only by the owner.
type FileStore struct {
	Path string
}

// DefaultPath is credentials.json in the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "recipe-tracker", "credentials.json"), nil
}

func (f FileStore) Load() (*Credential, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c Credential
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return &c, nil
}

func (f FileStore) Save(c *Credential) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, raw, 0o600)
}

func (f FileStore) Remove() error {
	err := os.Remove(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
