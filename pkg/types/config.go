// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults matching the reference layout of a news-dataset workspace.
const (
	DefaultInputDir   = "raw_data"
	DefaultOutputCSV  = "preprocessed_data/data.csv"
	DefaultRepoID     = "DavideTHU/chinese_news_dataset"
	DefaultDatasetURL = "https://huggingface.co/datasets/DavideTHU/chinese_news_dataset"
	DefaultHubURL     = "https://huggingface.co"
	DefaultHubDir     = "hub"
)

// ExtractionConfig holds settings for the JSON-to-CSV stage.
type ExtractionConfig struct {
	// InputDir is the directory scanned for *.json article records.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputCSV is the CSV file written (and overwritten) by each run.
	OutputCSV string `json:"output_csv" yaml:"output_csv"`
}

// HubBackend identifies the hub client implementation.
type HubBackend string

const (
	HubHTTP   HubBackend = "http"
	HubSQLite HubBackend = "sqlite"
)

// HubConfig holds settings for the hub client used by the publish stage.
type HubConfig struct {
	// Backend selects the hub client: http or sqlite.
	Backend HubBackend `json:"backend" yaml:"backend"`

	// BaseURL is the root of the remote hub API (http backend).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Dir holds the local hub database (sqlite backend).
	Dir string `json:"dir" yaml:"dir"`

	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent with every hub request (e.g. "news-dataset/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PublishConfig holds settings for the CSV-to-dataset stage.
type PublishConfig struct {
	// Push uploads the dataset to the hub when set.
	Push bool `json:"push" yaml:"push"`

	// RepoID is the target dataset identifier on the hub.
	RepoID string `json:"repo_id" yaml:"repo_id"`

	// Private requests private visibility for the pushed dataset.
	Private bool `json:"private" yaml:"private"`

	// DatasetURL is echoed after publishing. It is informational only.
	DatasetURL string `json:"dataset_url" yaml:"dataset_url"`
}
