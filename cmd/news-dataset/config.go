// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-dataset/pkg/types"
)

// flagKeys maps command-line flags to configuration keys. A flag is bound
// only on the command that is running, so commands sharing a flag name do
// not overwrite each other's binding.
var flagKeys = map[string]string{
	"input-dir":   "extraction.input_dir",
	"output-csv":  "extraction.output_csv",
	"push":        "publish.push",
	"private":     "publish.private",
	"repo-id":     "publish.repo_id",
	"dataset-url": "publish.dataset_url",
	"hub-backend": "hub.backend",
	"hub-url":     "hub.base_url",
	"hub-dir":     "hub.dir",
	"hub-timeout": "hub.timeout",
}

func init() {
	viper.SetDefault("extraction.input_dir", types.DefaultInputDir)
	viper.SetDefault("extraction.output_csv", types.DefaultOutputCSV)
	viper.SetDefault("publish.repo_id", types.DefaultRepoID)
	viper.SetDefault("publish.dataset_url", types.DefaultDatasetURL)
	viper.SetDefault("hub.backend", string(types.HubHTTP))
	viper.SetDefault("hub.base_url", types.DefaultHubURL)
	viper.SetDefault("hub.dir", types.DefaultHubDir)
	viper.SetDefault("hub.timeout", 5*time.Minute)
}

// bindFlags binds the running command's flags to their configuration keys.
func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().String("input-dir", types.DefaultInputDir, "directory of *.json article records")
	cmd.Flags().Bool("quiet", false, "suppress per-file progress lines")
}

func addPublishFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("push", false, "push the dataset to the hub")
	cmd.Flags().Bool("private", false, "request private visibility when pushing")
	cmd.Flags().String("repo-id", types.DefaultRepoID, "target dataset repo id on the hub")
	cmd.Flags().String("dataset-url", types.DefaultDatasetURL, "dataset URL to report after publishing (informational)")
	cmd.Flags().String("hub-backend", string(types.HubHTTP), "hub client: http or sqlite")
	cmd.Flags().String("hub-url", types.DefaultHubURL, "base URL of the remote hub (http backend)")
	cmd.Flags().String("hub-dir", types.DefaultHubDir, "directory of the local hub database (sqlite backend)")
	cmd.Flags().Duration("hub-timeout", 5*time.Minute, "HTTP timeout for hub requests")
	cmd.Flags().Int("preview", 0, "print the first N records after loading")
}

func addCSVFlag(cmd *cobra.Command) {
	cmd.Flags().String("output-csv", types.DefaultOutputCSV, "CSV file written by extract and read by publish")
}

func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		InputDir:  viper.GetString("extraction.input_dir"),
		OutputCSV: viper.GetString("extraction.output_csv"),
	}
}

func publishConfig() types.PublishConfig {
	return types.PublishConfig{
		Push:       viper.GetBool("publish.push"),
		RepoID:     viper.GetString("publish.repo_id"),
		Private:    viper.GetBool("publish.private"),
		DatasetURL: viper.GetString("publish.dataset_url"),
	}
}

func hubConfig() types.HubConfig {
	return types.HubConfig{
		Backend:   types.HubBackend(viper.GetString("hub.backend")),
		BaseURL:   viper.GetString("hub.base_url"),
		Dir:       viper.GetString("hub.dir"),
		Timeout:   viper.GetDuration("hub.timeout"),
		UserAgent: "news-dataset/" + version,
	}
}
