package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/news-dataset/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Convert JSON article records into a CSV table",
	Long: `Extract reads every *.json file in the input directory, in filename
order, and writes one CSV row (url, output, instruction) per record to the
output file, which is overwritten. Records missing url, query_message, or
article_title are logged and skipped.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := bindFlags(cmd); err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	return extractStage(quiet)
}

// extractStage runs extraction with the current configuration and prints
// the summary.
func extractStage(quiet bool) error {
	cfg := extractionConfig()

	var progress io.Writer = os.Stderr
	if quiet {
		progress = nil
	}

	summary, err := extract.ExtractAll(cfg, log, progress)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s -> %s\n", summary, cfg.OutputCSV)
	return nil
}

func init() {
	addExtractFlags(extractCmd)
	addCSVFlag(extractCmd)

	rootCmd.AddCommand(extractCmd)
}
