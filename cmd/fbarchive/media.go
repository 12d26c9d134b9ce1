package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fbarchive/pkg/archive"
	"fbarchive/pkg/dataset"
	"fbarchive/pkg/ui"
)

var (
	mediaAccessToken string
	mediaOutput      string
)

var mediaCmd = &cobra.Command{
	Use:   "media <page_id>",
	Short: "Extract media attachment info from a Facebook page",
	Long: `Walks the page's posts, profile photos and albums through the Graph API
and writes one CSV row per media attachment, ordered by creation time.

Records found in more than one place (for example a photo that is both a
post attachment and an album entry) are merged, with the photo detail
overriding the attachment detail.`,
	Args: cobra.ExactArgs(1),
	RunE: runMedia,
}

func init() {
	mediaCmd.Flags().StringVarP(&mediaAccessToken, "access-token", "t", "", "page access token (overrides environment and stored credentials)")
	mediaCmd.Flags().StringVarP(&mediaOutput, "output", "o", "", "output CSV path (default output/facebook_page_media.csv)")
	rootCmd.AddCommand(mediaCmd)
}

func runMedia(cmd *cobra.Command, args []string) error {
	pageID := args[0]

	cfg, log, err := loadConfig(map[string]interface{}{
		"access-token": mediaAccessToken,
		"media-csv":    mediaOutput,
	})
	if err != nil {
		ui.PrintError("Configuration error: %v", err)
		return err
	}

	token, err := resolveToken(mediaAccessToken, cfg, log)
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	ui.PrintInfo("Page", pageID)
	ui.PrintInfo("Output", cfg.Output.MediaCSV)
	fmt.Println()

	client, endpoints := newGraphClient(cfg, token, log)
	archiver := archive.New(client, endpoints, cfg.Archive.AcceptedTypes, log)

	records, err := archiver.ArchiveMedia(pageID)
	if err != nil {
		ui.PrintError("Media extraction failed: %v", err)
		return err
	}

	if err := dataset.WriteMedia(cfg.Output.MediaCSV, records); err != nil {
		ui.PrintError("Failed to write %s: %v", cfg.Output.MediaCSV, err)
		return err
	}

	degraded := 0
	for _, rec := range records {
		if rec.Error != "" {
			degraded++
		}
	}

	ui.PrintSuccess(fmt.Sprintf("Archived %d media records to %s", len(records), cfg.Output.MediaCSV))
	if degraded > 0 {
		ui.PrintWarning("%d records could not be fully resolved, see the error column", degraded)
	}

	return nil
}
