// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/news-dataset/internal/dataset"
	"github.com/pdiddy/news-dataset/internal/extract"
	"github.com/pdiddy/news-dataset/internal/hub"
	"github.com/pdiddy/news-dataset/pkg/types"
)

// recordingHub implements hub.Hub and remembers each push.
type recordingHub struct {
	pushes []push
	err    error
}

type push struct {
	rows    int
	repoID  string
	private bool
}

func (r *recordingHub) Push(_ context.Context, ds *dataset.Dataset, repoID string, private bool) error {
	r.pushes = append(r.pushes, push{rows: ds.NumRows(), repoID: repoID, private: private})
	return r.err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const threeRows = "url,output,instruction\nu1,o1,i1\nu2,o2,i2\nu3,o3,i3\n"

func TestPublishWithoutPush(t *testing.T) {
	path := writeCSV(t, threeRows)
	h := &recordingHub{}

	var out bytes.Buffer
	ds, err := Publish(context.Background(), path, h, types.PublishConfig{}, &out)
	require.NoError(t, err)

	assert.Equal(t, 3, ds.NumRows())
	assert.Equal(t, types.Header, ds.Columns())
	assert.Equal(t, map[string]string{"url": "u2", "output": "o2", "instruction": "i2"}, ds.Record(1))
	assert.Empty(t, h.pushes)
	assert.Empty(t, out.String())
}

func TestPublishNilHubWithoutPush(t *testing.T) {
	path := writeCSV(t, threeRows)
	ds, err := Publish(context.Background(), path, nil, types.PublishConfig{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.NumRows())
}

func TestPublishPush(t *testing.T) {
	tests := []struct {
		name    string
		private bool
	}{
		{"public", false},
		{"private", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, threeRows)
			h := &recordingHub{}

			var out bytes.Buffer
			_, err := Publish(context.Background(), path, h, types.PublishConfig{
				Push:    true,
				RepoID:  types.DefaultRepoID,
				Private: tt.private,
			}, &out)
			require.NoError(t, err)

			require.Len(t, h.pushes, 1)
			assert.Equal(t, push{rows: 3, repoID: types.DefaultRepoID, private: tt.private}, h.pushes[0])
			assert.Contains(t, out.String(), "pushed 3 rows to "+types.DefaultRepoID)
		})
	}
}

func TestPublishEchoesDatasetURL(t *testing.T) {
	path := writeCSV(t, threeRows)

	var out bytes.Buffer
	_, err := Publish(context.Background(), path, &recordingHub{}, types.PublishConfig{
		DatasetURL: types.DefaultDatasetURL,
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Dataset uploaded to hub: "+types.DefaultDatasetURL+"\n", out.String())
}

func TestPublishErrors(t *testing.T) {
	t.Run("missing CSV", func(t *testing.T) {
		h := &recordingHub{}
		_, err := Publish(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), h,
			types.PublishConfig{Push: true, RepoID: "o/n"}, &bytes.Buffer{})
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Empty(t, h.pushes)
	})

	t.Run("malformed CSV", func(t *testing.T) {
		path := writeCSV(t, "url,output,instruction\nonly,two\n")
		_, err := Publish(context.Background(), path, &recordingHub{}, types.PublishConfig{}, &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("push fails", func(t *testing.T) {
		path := writeCSV(t, threeRows)
		boom := errors.New("network down")
		h := &recordingHub{err: boom}

		var out bytes.Buffer
		ds, err := Publish(context.Background(), path, h,
			types.PublishConfig{Push: true, RepoID: "o/n", DatasetURL: "http://x"}, &out)
		require.ErrorIs(t, err, boom)
		assert.Nil(t, ds)
		assert.Len(t, h.pushes, 1, "no retry")
		assert.Empty(t, out.String())
	})

	t.Run("push without repo id", func(t *testing.T) {
		path := writeCSV(t, threeRows)
		h := &recordingHub{}
		_, err := Publish(context.Background(), path, h,
			types.PublishConfig{Push: true}, &bytes.Buffer{})
		require.ErrorIs(t, err, hub.ErrNoRepoID)
		assert.Empty(t, h.pushes)
	})

	t.Run("push without hub", func(t *testing.T) {
		path := writeCSV(t, threeRows)
		_, err := Publish(context.Background(), path, nil,
			types.PublishConfig{Push: true, RepoID: "o/n"}, &bytes.Buffer{})
		require.ErrorIs(t, err, ErrNoHub)
	})
}

func TestPublishToSQLiteHub(t *testing.T) {
	path := writeCSV(t, threeRows)
	h, err := hub.OpenSQLite(t.TempDir())
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	ds, err := Publish(ctx, path, h, types.PublishConfig{Push: true, RepoID: types.DefaultRepoID}, &bytes.Buffer{})
	require.NoError(t, err)

	stored, err := h.Dataset(ctx, types.DefaultRepoID)
	require.NoError(t, err)
	assert.Equal(t, ds.Records(), stored.Records())
}

func TestPublishKeepsExtractedCRLFText(t *testing.T) {
	tmp := t.TempDir()
	cfg := types.ExtractionConfig{
		InputDir:  filepath.Join(tmp, "raw_data"),
		OutputCSV: filepath.Join(tmp, "preprocessed_data", "data.csv"),
	}
	require.NoError(t, os.MkdirAll(cfg.InputDir, 0o755))
	record := `{"url": "http://a.com x", "query_message": "line1\r\nline2", "article_title": "标题\r\n副标题"}`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, "a.json"), []byte(record), 0o644))

	summary, err := extract.ExtractAll(cfg, zerolog.Nop(), nil)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Written)

	h, err := hub.OpenSQLite(filepath.Join(tmp, "hub"))
	require.NoError(t, err)
	defer h.Close()

	ctx := context.Background()
	ds, err := Publish(ctx, cfg.OutputCSV, h, types.PublishConfig{Push: true, RepoID: "tester/news"}, &bytes.Buffer{})
	require.NoError(t, err)

	output, ok := ds.Column(types.ColumnOutput)
	require.True(t, ok)
	assert.Equal(t, []string{"line1\r\nline2"}, output)
	assert.Equal(t, extract.BuildRow(types.Article{
		URL:          ptr("http://a.com x"),
		QueryMessage: ptr("line1\r\nline2"),
		ArticleTitle: ptr("标题\r\n副标题"),
	}).Fields(), ds.Row(0))

	stored, err := h.Dataset(ctx, "tester/news")
	require.NoError(t, err)
	assert.Equal(t, ds.Records(), stored.Records())
}

func ptr(s string) *string { return &s }
