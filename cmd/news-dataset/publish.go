// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/news-dataset/internal/hub"
	"github.com/pdiddy/news-dataset/internal/publish"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Load the CSV as a dataset and optionally push it to a hub",
	Long: `Publish loads the extracted CSV into a dataset and prints its summary.
With --push the dataset is uploaded to --repo-id on the configured hub
(http for a remote hub, sqlite for a local mirror). Push failures end the
run; nothing is retried.`,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	preview, _ := cmd.Flags().GetInt("preview")
	return publishStage(cmd.Context(), preview)
}

// publishStage runs the publish stage with the current configuration.
func publishStage(ctx context.Context, preview int) error {
	csvPath := extractionConfig().OutputCSV
	opts := publishConfig()

	var client hub.Client
	if opts.Push {
		c, err := hub.New(hubConfig(), loadedSecrets.HubToken())
		if err != nil {
			return err
		}
		defer c.Close()
		client = c
		log.Debug().Str("repo", opts.RepoID).Bool("private", opts.Private).Msg("pushing dataset")
	}

	ds, err := publish.Publish(ctx, csvPath, client, opts, os.Stdout)
	if err != nil {
		return err
	}
	defer ds.Release()

	fmt.Fprintln(os.Stdout, ds)
	if preview > 0 {
		fmt.Fprintln(os.Stdout)
		return ds.Preview(os.Stdout, preview, 40)
	}
	return nil
}

func init() {
	addPublishFlags(publishCmd)
	addCSVFlag(publishCmd)

	rootCmd.AddCommand(publishCmd)
}
