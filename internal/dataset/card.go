// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

// TrainSplit is the only split a published dataset carries.
const TrainSplit = "train"

// DataPath is the location of the train split inside a hub repository.
const DataPath = "data/train-00000-of-00001.parquet"

// CardMetadata is the YAML front matter of a dataset card.
type CardMetadata struct {
	PrettyName     string      `json:"pretty_name,omitempty" yaml:"pretty_name,omitempty"`
	License        string      `json:"license,omitempty" yaml:"license,omitempty"`
	Language       []string    `json:"language,omitempty" yaml:"language,omitempty"`
	TaskCategories []string    `json:"task_categories,omitempty" yaml:"task_categories,omitempty"`
	DatasetInfo    DatasetInfo `json:"dataset_info" yaml:"dataset_info"`
	Configs        []Config    `json:"configs,omitempty" yaml:"configs,omitempty"`
}

// DatasetInfo describes the features and splits of a dataset.
type DatasetInfo struct {
	Features []Feature `json:"features" yaml:"features"`
	Splits   []Split   `json:"splits" yaml:"splits"`
}

// Feature is one typed column.
type Feature struct {
	Name  string `json:"name" yaml:"name"`
	Dtype string `json:"dtype" yaml:"dtype"`
}

// Split names a partition of the dataset and its size.
type Split struct {
	Name        string `json:"name" yaml:"name"`
	NumExamples int    `json:"num_examples" yaml:"num_examples"`
}

// Config maps a split to its data files.
type Config struct {
	ConfigName string     `json:"config_name" yaml:"config_name"`
	DataFiles  []DataFile `json:"data_files" yaml:"data_files"`
}

// DataFile is a split's path inside the repository.
type DataFile struct {
	Split string `json:"split" yaml:"split"`
	Path  string `json:"path" yaml:"path"`
}

// Metadata describes d as card front matter.
func (d *Dataset) Metadata(repoID string) CardMetadata {
	columns := d.Columns()
	features := make([]Feature, len(columns))
	for i, c := range columns {
		features[i] = Feature{Name: c, Dtype: "string"}
	}
	return CardMetadata{
		PrettyName:     repoName(repoID),
		Language:       []string{"zh"},
		TaskCategories: []string{"text-generation"},
		DatasetInfo: DatasetInfo{
			Features: features,
			Splits:   []Split{{Name: TrainSplit, NumExamples: d.NumRows()}},
		},
		Configs: []Config{{
			ConfigName: "default",
			DataFiles:  []DataFile{{Split: TrainSplit, Path: DataPath}},
		}},
	}
}

// Card renders a dataset card: YAML front matter followed by a short
// Markdown description.
func (d *Dataset) Card(repoID string) ([]byte, error) {
	meta, err := yaml.Marshal(d.Metadata(repoID))
	if err != nil {
		return nil, fmt.Errorf("marshaling card metadata: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", repoName(repoID))
	fmt.Fprintf(&b, "Instruction-tuning records built from news articles: %d rows with columns %s.\n",
		d.NumRows(), strings.Join(d.Columns(), ", "))
	return b.Bytes(), nil
}

// ParseCard extracts the front matter from a dataset card.
func ParseCard(card []byte) (CardMetadata, error) {
	rest, ok := bytes.CutPrefix(card, []byte("---\n"))
	if !ok {
		return CardMetadata{}, errors.New("card has no front matter")
	}
	front, _, ok := bytes.Cut(rest, []byte("\n---\n"))
	if !ok {
		return CardMetadata{}, errors.New("card front matter is not terminated")
	}

	var meta CardMetadata
	if err := yaml.Unmarshal(front, &meta); err != nil {
		return CardMetadata{}, fmt.Errorf("parsing card metadata: %w", err)
	}
	return meta, nil
}

// repoName returns the part of a repo id after the owner, if any.
func repoName(repoID string) string {
	if i := strings.LastIndex(repoID, "/"); i >= 0 {
		return repoID[i+1:]
	}
	return repoID
}
