package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fbarchive/pkg/archive"
	"fbarchive/pkg/dataset"
	"fbarchive/pkg/ui"
)

var (
	postsAccessToken string
	postsOutput      string
)

var postsCmd = &cobra.Command{
	Use:   "posts <page_id>",
	Short: "Extract post info from a Facebook page",
	Long: `Walks the page's feed and photo stories through the Graph API and
writes one CSV row per post, ordered by creation time. Posts reached
through both the feed and a photo story appear once.`,
	Args: cobra.ExactArgs(1),
	RunE: runPosts,
}

func init() {
	postsCmd.Flags().StringVarP(&postsAccessToken, "access-token", "t", "", "page access token (overrides environment and stored credentials)")
	postsCmd.Flags().StringVarP(&postsOutput, "output", "o", "", "output CSV path (default output/facebook_page_posts.csv)")
	rootCmd.AddCommand(postsCmd)
}

func runPosts(cmd *cobra.Command, args []string) error {
	pageID := args[0]

	cfg, log, err := loadConfig(map[string]interface{}{
		"access-token": postsAccessToken,
		"posts-csv":    postsOutput,
	})
	if err != nil {
		ui.PrintError("Configuration error: %v", err)
		return err
	}

	token, err := resolveToken(postsAccessToken, cfg, log)
	if err != nil {
		ui.PrintError("%v", err)
		return err
	}

	ui.PrintInfo("Page", pageID)
	ui.PrintInfo("Output", cfg.Output.PostsCSV)
	fmt.Println()

	client, endpoints := newGraphClient(cfg, token, log)
	archiver := archive.New(client, endpoints, cfg.Archive.AcceptedTypes, log)

	records, err := archiver.ArchivePosts(pageID)
	if err != nil {
		ui.PrintError("Post extraction failed: %v", err)
		return err
	}

	if err := dataset.WritePosts(cfg.Output.PostsCSV, records); err != nil {
		ui.PrintError("Failed to write %s: %v", cfg.Output.PostsCSV, err)
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Archived %d posts to %s", len(records), cfg.Output.PostsCSV))
	return nil
}
