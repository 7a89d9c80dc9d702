package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/oauth2"
)

// CredentialsVersion is the current layout of the credentials file.
const CredentialsVersion = 1

type credentialsFile struct {
	Version int           `json:"version"`
	Token   *oauth2.Token `json:"token"`
}

// Credentials stores the OAuth token of the account.
type Credentials struct {
	path string
}

func NewCredentials(path string) *Credentials {
	return &Credentials{path: path}
}

func (c Credentials) Path() string {
	return c.path
}

// Load returns the stored token, or nil if nothing was stored yet.
func (c Credentials) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file: reading credentials: %w", err)
	}

	var f credentialsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("file: decoding credentials: %w", err)
	}
	if f.Version != CredentialsVersion {
		return nil, fmt.Errorf("file: unsupported credentials version %d", f.Version)
	}
	if f.Token == nil {
		return nil, errors.New("file: credentials without token")
	}
	return f.Token, nil
}

func (c Credentials) Save(tok *oauth2.Token) error {
	if tok == nil {
		return errors.New("file: refusing to save an empty token")
	}
	data, err := json.Marshal(credentialsFile{
		Version: CredentialsVersion,
		Token:   tok,
	})
	if err != nil {
		return fmt.Errorf("file: encoding credentials: %w", err)
	}
	return writeFile(c.path, data, 0o600)
}
