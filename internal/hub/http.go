// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/news-dataset/internal/dataset"
	"github.com/pdiddy/news-dataset/internal/httputil"
)

// cardPath is where the dataset card lives in a hub repository.
const cardPath = "README.md"

// HTTPHub pushes datasets to a remote hub over its HTTP API. Each push
// creates the repository if needed, then uploads the train split as
// Parquet and the dataset card. Failures are returned as-is; nothing is
// retried.
type HTTPHub struct {
	Client    *http.Client
	BaseURL   string
	Token     string
	UserAgent string
}

// Push uploads ds to repoID with the requested visibility.
func (h *HTTPHub) Push(ctx context.Context, ds *dataset.Dataset, repoID string, private bool) error {
	if err := ValidateRepoID(repoID); err != nil {
		return err
	}

	if err := h.createRepo(ctx, repoID, private); err != nil {
		return fmt.Errorf("creating dataset repo %s: %w", repoID, err)
	}

	var data bytes.Buffer
	if err := ds.WriteParquet(&data); err != nil {
		return fmt.Errorf("serializing dataset: %w", err)
	}
	if err := h.upload(ctx, repoID, dataset.DataPath, "application/vnd.apache.parquet", data.Bytes()); err != nil {
		return fmt.Errorf("uploading %s: %w", dataset.DataPath, err)
	}

	card, err := ds.Card(repoID)
	if err != nil {
		return err
	}
	if err := h.upload(ctx, repoID, cardPath, "text/markdown; charset=utf-8", card); err != nil {
		return fmt.Errorf("uploading %s: %w", cardPath, err)
	}
	return nil
}

// Close releases idle connections.
func (h *HTTPHub) Close() error {
	if h.Client != nil {
		h.Client.CloseIdleConnections()
	}
	return nil
}

type createRepoRequest struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Private      bool   `json:"private"`
}

// createRepo creates the dataset repository. HTTP 409 means it already
// exists, which is fine.
func (h *HTTPHub) createRepo(ctx context.Context, repoID string, private bool) error {
	owner, name := splitRepoID(repoID)
	body, err := json.Marshal(createRepoRequest{
		Type:         "dataset",
		Name:         name,
		Organization: owner,
		Private:      private,
	})
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := h.newRequest(ctx, http.MethodPost, h.BaseURL+"/api/repos/create", "application/json", body)
	if err != nil {
		return err
	}
	resp, err := httputil.Do(ctx, h.Client, req)
	if err != nil {
		if httputil.HasStatus(err, http.StatusConflict) {
			return nil
		}
		return err
	}
	resp.Body.Close()
	return nil
}

func (h *HTTPHub) upload(ctx context.Context, repoID, path, contentType string, body []byte) error {
	owner, name := splitRepoID(repoID)
	repoPath := url.PathEscape(name)
	if owner != "" {
		repoPath = url.PathEscape(owner) + "/" + repoPath
	}
	endpoint := fmt.Sprintf("%s/api/datasets/%s/upload/%s", h.BaseURL, repoPath, path)

	req, err := h.newRequest(ctx, http.MethodPut, endpoint, contentType, body)
	if err != nil {
		return err
	}
	resp, err := httputil.Do(ctx, h.Client, req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (h *HTTPHub) newRequest(ctx context.Context, method, endpoint, contentType string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}
	return req, nil
}
