// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run extract (with --extract) and then publish",
	Long: `Run chains the two stages. Extraction is off unless --extract is given,
so the default run re-publishes a previously written CSV with push disabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd); err != nil {
			return err
		}

		doExtract, _ := cmd.Flags().GetBool("extract")
		if doExtract {
			quiet, _ := cmd.Flags().GetBool("quiet")
			if err := extractStage(quiet); err != nil {
				return err
			}
		}

		preview, _ := cmd.Flags().GetInt("preview")
		return publishStage(cmd.Context(), preview)
	},
}

func init() {
	runCmd.Flags().Bool("extract", false, "run extraction before publishing")
	addExtractFlags(runCmd)
	addPublishFlags(runCmd)
	addCSVFlag(runCmd)

	rootCmd.AddCommand(runCmd)
}
