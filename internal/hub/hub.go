// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hub publishes datasets to a dataset hub. The remote hub is
// treated as an opaque collaborator that accepts a dataset, a target repo
// id, and a visibility flag; a local SQLite mirror implements the same
// contract for offline use.
package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/news-dataset/internal/dataset"
	"github.com/pdiddy/news-dataset/pkg/types"
)

// ErrNoRepoID is returned when a push has no target repo id.
var ErrNoRepoID = errors.New("hub: repo id is required")

// Hub accepts a dataset under a repo id.
type Hub interface {
	Push(ctx context.Context, ds *dataset.Dataset, repoID string, private bool) error
}

// Client is a Hub that holds resources until closed.
type Client interface {
	Hub
	io.Closer
}

// New builds the hub client selected by cfg.Backend. token authenticates
// against the remote hub and is ignored by the sqlite backend.
func New(cfg types.HubConfig, token string) (Client, error) {
	switch cfg.Backend {
	case types.HubHTTP, "":
		base := cfg.BaseURL
		if base == "" {
			base = types.DefaultHubURL
		}
		return &HTTPHub{
			Client:    &http.Client{Timeout: cfg.Timeout},
			BaseURL:   strings.TrimSuffix(base, "/"),
			Token:     token,
			UserAgent: cfg.UserAgent,
		}, nil
	case types.HubSQLite:
		dir := cfg.Dir
		if dir == "" {
			dir = types.DefaultHubDir
		}
		return OpenSQLite(dir)
	default:
		return nil, fmt.Errorf("unsupported hub backend %q: use http or sqlite", cfg.Backend)
	}
}

// ValidateRepoID checks that repoID is "name" or "owner/name" with no
// whitespace or empty parts.
func ValidateRepoID(repoID string) error {
	if repoID == "" {
		return ErrNoRepoID
	}
	if strings.ContainsAny(repoID, " \t\r\n") {
		return fmt.Errorf("hub: repo id %q contains whitespace", repoID)
	}
	parts := strings.Split(repoID, "/")
	if len(parts) > 2 {
		return fmt.Errorf("hub: repo id %q has more than one '/'", repoID)
	}
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("hub: repo id %q has an empty part", repoID)
		}
	}
	return nil
}

// splitRepoID returns the owner (possibly empty) and name of a repo id.
func splitRepoID(repoID string) (owner, name string) {
	if i := strings.Index(repoID, "/"); i >= 0 {
		return repoID[:i], repoID[i+1:]
	}
	return "", repoID
}
