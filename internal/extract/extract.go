// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a directory of JSON article records into a CSV
// table of url, output, and instruction columns.
package extract

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/news-dataset/pkg/types"
)

const jsonExt = ".json"

// MissingKeysError reports required keys absent from an article record.
type MissingKeysError struct {
	File string
	Keys []string
}

func (e *MissingKeysError) Error() string {
	return fmt.Sprintf("missing key(s) in %s: %s", e.File, strings.Join(e.Keys, ", "))
}

// Summary holds counts from an extraction run.
type Summary struct {
	Written int
	Skipped int // records missing required keys
	Missing int // listed files that could not be found
	Invalid int // files that could not be read or decoded
}

// Total returns the number of JSON files considered.
func (s Summary) Total() int {
	return s.Written + s.Skipped + s.Missing + s.Invalid
}

// HasProblems reports whether any file was left out of the CSV.
func (s Summary) HasProblems() bool {
	return s.Skipped+s.Missing+s.Invalid > 0
}

func (s Summary) String() string {
	return fmt.Sprintf("extracted: %d rows, skipped: %d, missing: %d, invalid: %d",
		s.Written, s.Skipped, s.Missing, s.Invalid)
}

// ExtractAll reads every *.json file in cfg.InputDir in filename order and
// writes one CSV row per complete record to cfg.OutputCSV, which is
// overwritten. Per-file problems are logged and counted; failing to list
// the input directory or to create the output aborts the run. Progress lines
// go to progress when it is non-nil.
func ExtractAll(cfg types.ExtractionConfig, log zerolog.Logger, progress io.Writer) (Summary, error) {
	// List first so a bad input directory leaves an existing CSV intact.
	names, err := listJSON(cfg.InputDir)
	if err != nil {
		return Summary{}, err
	}

	if dir := filepath.Dir(cfg.OutputCSV); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("creating output directory: %w", err)
		}
	}

	out, err := os.Create(cfg.OutputCSV)
	if err != nil {
		return Summary{}, fmt.Errorf("opening output CSV %s: %w", cfg.OutputCSV, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(types.Header); err != nil {
		return Summary{}, fmt.Errorf("writing CSV header: %w", err)
	}

	var summary Summary
	for i, name := range names {
		if progress != nil {
			fmt.Fprintf(progress, "[%d/%d] %s\n", i+1, len(names), name)
		}

		path := filepath.Join(cfg.InputDir, name)
		row, err := ExtractFile(path)
		if err != nil {
			var mk *MissingKeysError
			switch {
			case errors.As(err, &mk):
				log.Warn().Str("file", name).Strs("keys", mk.Keys).Msg("missing key(s), skipping record")
				summary.Skipped++
			case errors.Is(err, fs.ErrNotExist):
				log.Warn().Str("file", path).Msg("JSON file not found, skipping")
				summary.Missing++
			default:
				log.Warn().Str("file", name).Err(err).Msg("unreadable record, skipping")
				summary.Invalid++
			}
			continue
		}

		if err := w.Write(row.Fields()); err != nil {
			return summary, fmt.Errorf("writing row for %s: %w", name, err)
		}
		summary.Written++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return summary, fmt.Errorf("flushing CSV: %w", err)
	}
	if err := out.Close(); err != nil {
		return summary, fmt.Errorf("closing output CSV: %w", err)
	}

	log.Debug().Int("rows", summary.Written).Str("path", cfg.OutputCSV).Msg("CSV written")
	return summary, nil
}

// ExtractFile parses a single article record and builds its CSV row.
func ExtractFile(path string) (types.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Row{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var article types.Article
	if err := json.Unmarshal(data, &article); err != nil {
		return types.Row{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	if missing := article.MissingKeys(); len(missing) > 0 {
		return types.Row{}, &MissingKeysError{File: filepath.Base(path), Keys: missing}
	}

	return BuildRow(article), nil
}

// BuildRow maps a complete article to its CSV row. The caller must ensure
// no required key is missing.
func BuildRow(a types.Article) types.Row {
	return types.Row{
		URL:         firstToken(*a.URL),
		Output:      *a.QueryMessage,
		Instruction: RenderInstruction(*a.ArticleTitle),
	}
}

// firstToken returns the first whitespace-separated token of s, or "".
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// listJSON returns the names of regular *.json files in dir. os.ReadDir
// sorts by filename, which makes row order reproducible across runs.
func listJSON(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), jsonExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
