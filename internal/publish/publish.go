// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish loads the extracted CSV as a dataset and optionally
// pushes it to a hub.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/news-dataset/internal/dataset"
	"github.com/pdiddy/news-dataset/internal/hub"
	"github.com/pdiddy/news-dataset/pkg/types"
)

// ErrNoHub is returned when a push is requested without a hub client.
var ErrNoHub = errors.New("publish: push requested but no hub configured")

// Publish loads csvPath into a dataset. When opts.Push is set the dataset
// is pushed to opts.RepoID with opts.Private visibility. A non-empty
// opts.DatasetURL is echoed to w; it is not derived from the push. Load and
// push failures are returned without retry.
func Publish(ctx context.Context, csvPath string, h hub.Hub, opts types.PublishConfig, w io.Writer) (*dataset.Dataset, error) {
	ds, err := dataset.LoadCSV(csvPath)
	if err != nil {
		return nil, err
	}

	if opts.Push {
		if h == nil {
			return nil, ErrNoHub
		}
		if opts.RepoID == "" {
			return nil, hub.ErrNoRepoID
		}
		if err := h.Push(ctx, ds, opts.RepoID, opts.Private); err != nil {
			return nil, fmt.Errorf("pushing dataset to %s: %w", opts.RepoID, err)
		}
		fmt.Fprintf(w, "pushed %d rows to %s (private: %t)\n", ds.NumRows(), opts.RepoID, opts.Private)
	}

	if opts.DatasetURL != "" {
		fmt.Fprintf(w, "Dataset uploaded to hub: %s\n", opts.DatasetURL)
	}

	return ds, nil
}
