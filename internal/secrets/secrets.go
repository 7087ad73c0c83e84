// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files
// and from an optional .env file. In the directory, each file is one
// secret: the filename is the key and the trimmed contents are the value.
//
// Supported key files: hub-token.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Hub token lookup names.
const (
	HubTokenKey = "hub-token"
	HubTokenEnv = "HUB_TOKEN"
)

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads the key files in dir. A missing directory yields an empty
// set. Dotfiles and subdirectories are ignored; unreadable files are
// logged and skipped.
func Load(dir string, log zerolog.Logger) (Secrets, error) {
	fsys := os.DirFS(dir)
	entries, err := fs.ReadDir(fsys, ".")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Secrets{}, nil
	case err != nil:
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if err := s.readKey(fsys, entry.Name()); err != nil {
			log.Warn().Str("key", entry.Name()).Err(err).Msg("skipping unreadable secret")
		}
	}
	return s, nil
}

// readKey stores the trimmed contents of the named key file. Blank files
// are not stored.
func (s Secrets) readKey(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	if value := strings.TrimSpace(string(data)); value != "" {
		s[name] = value
	}
	return nil
}

// LoadEnvFile adds variables from a .env file to the process environment
// without overriding variables already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Keys returns the loaded key names.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// HubToken returns the hub token from the hub-token key file, falling
// back to the HUB_TOKEN environment variable.
func (s Secrets) HubToken() string {
	if v := s[HubTokenKey]; v != "" {
		return v
	}
	return os.Getenv(HubTokenEnv)
}
