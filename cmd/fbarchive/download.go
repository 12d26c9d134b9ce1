package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fbarchive/pkg/dataset"
	"fbarchive/pkg/facebook"
	"fbarchive/pkg/storage"
	"fbarchive/pkg/ui"

	"fbarchive/internal/downloader"
)

var (
	downloadInput     string
	downloadOutputDir string

	columnPostID      string
	columnCreatedUnix string
	columnMediaID     string
	columnMediaType   string
	columnMediaURL    string
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the media files referenced by an archived CSV",
	Long: `Reads a CSV produced by the media command (or any CSV with compatible
columns, remappable through the --column-* flags) and downloads each
referenced file into the output directory.

Files are named "{post_id} {media_id} {date}.{ext}" so re-running the
command over the same CSV overwrites rather than duplicates. Individual
download failures are logged and skipped.`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

func init() {
	defaults := dataset.DefaultColumnMapping()

	downloadCmd.Flags().StringVarP(&downloadInput, "input", "i", "", "input CSV path (default output/facebook_page_media.csv)")
	downloadCmd.Flags().StringVarP(&downloadOutputDir, "output-dir", "o", "", "directory for downloaded files (default output/media)")
	downloadCmd.Flags().StringVar(&columnPostID, "column-post-id", defaults.PostID, "CSV column holding the post id")
	downloadCmd.Flags().StringVar(&columnCreatedUnix, "column-created-unix", defaults.CreatedUnixTimestamp, "CSV column holding the creation unix timestamp")
	downloadCmd.Flags().StringVar(&columnMediaID, "column-media-id", defaults.MediaID, "CSV column holding the media id")
	downloadCmd.Flags().StringVar(&columnMediaType, "column-media-type", defaults.MediaType, "CSV column holding the media type")
	downloadCmd.Flags().StringVar(&columnMediaURL, "column-media-url", defaults.MediaURL, "CSV column holding the media URL")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig(map[string]interface{}{
		"media-csv": downloadInput,
		"media-dir": downloadOutputDir,
	})
	if err != nil {
		ui.PrintError("Configuration error: %v", err)
		return err
	}

	ui.PrintInfo("Input", cfg.Output.MediaCSV)
	ui.PrintInfo("Output directory", cfg.Output.MediaDirectory)
	fmt.Println()

	store, err := storage.NewManager(cfg.Output.MediaDirectory)
	if err != nil {
		ui.PrintError("Failed to prepare output directory: %v", err)
		return err
	}

	client := facebook.NewClient(cfg.Download.Timeout, log)
	dl := downloader.New(client, store, cfg.Archive.AcceptedTypes, cfg.Download.SupportedFormats, log)

	cols := dataset.ColumnMapping{
		PostID:               columnPostID,
		CreatedUnixTimestamp: columnCreatedUnix,
		MediaID:              columnMediaID,
		MediaType:            columnMediaType,
		MediaURL:             columnMediaURL,
	}

	downloaded, err := dl.Run(cfg.Output.MediaCSV, cols)
	if err != nil {
		ui.PrintError("Download run failed: %v", err)
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Downloaded %d files to %s", downloaded, store.OutputDir()))
	return nil
}
