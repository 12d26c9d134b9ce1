package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fbarchive/pkg/auth"
	"fbarchive/pkg/config"
	"fbarchive/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage fbarchive configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (FBARCHIVE_*, FB_PAGE_ACCESS_TOKEN)
  - .env files
  - Configuration file
  - Default values (lowest priority)`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is created in the current directory as '.fbarchive.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration merged from all sources. The access
token is masked.`,
	Run: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Run:   runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = ".fbarchive.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists: %s", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	exampleConfig := `# fbarchive configuration file
#
# Environment variables override this file:
#   FB_PAGE_ACCESS_TOKEN   page access token
#   FBARCHIVE_BASE_URL     Graph API base URL
#   FBARCHIVE_API_VERSION  Graph API version
#   FBARCHIVE_MEDIA_CSV    media dataset path
#   FBARCHIVE_POSTS_CSV    posts dataset path
#   FBARCHIVE_MEDIA_DIR    media download directory
#   FBARCHIVE_LOG_LEVEL    log level

facebook:
  # Page access token. Prefer FB_PAGE_ACCESS_TOKEN or
  # 'fbarchive auth login' over storing it here.
  access_token: ""

  base_url: "https://graph.facebook.com"
  api_version: "v20.0"

archive:
  # Attachment types extracted as media; anything else is skipped
  accepted_types:
    - album
    - photo
    - cover_photo
    - profile_media
    - animated_image_autoplay
    - video
    - video_inline
    - video_autoplay
    - music

output:
  media_csv: "output/facebook_page_media.csv"
  posts_csv: "output/facebook_page_posts.csv"
  media_directory: "output/media"

download:
  # File extensions the download command accepts
  supported_formats:
    - jpeg
    - jpg
    - png
    - mp3
    - mp4

logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional); empty logs to stdout only
  file: ""
`

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file: %v", err)
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Set FB_PAGE_ACCESS_TOKEN or run 'fbarchive auth login'")
	fmt.Println("2. Run 'fbarchive config validate' to check the configuration")
	fmt.Println("3. Start archiving with 'fbarchive media <page_id>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	displayCfg := *cfg
	if displayCfg.Facebook.AccessToken != "" {
		displayCfg.Facebook.AccessToken = auth.MaskToken(displayCfg.Facebook.AccessToken)
	}

	data, err := yaml.Marshal(&displayCfg)
	if err != nil {
		ui.PrintError("Failed to format configuration: %v", err)
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (FBARCHIVE_*, FB_PAGE_ACCESS_TOKEN)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (default locations)")
	}
	fmt.Println("4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed: %v", err)
		os.Exit(1)
	}

	var warnings []string
	if cfg.Facebook.AccessToken == "" && os.Getenv(config.AccessTokenEnvName) == "" {
		warnings = append(warnings, "no access token configured; media and posts commands will need one")
	}

	if len(warnings) > 0 {
		for _, warn := range warnings {
			ui.PrintWarning("%s", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Graph API: %s/%s\n", cfg.Facebook.BaseURL, cfg.Facebook.APIVersion)
	fmt.Printf("  Media dataset: %s\n", cfg.Output.MediaCSV)
	fmt.Printf("  Posts dataset: %s\n", cfg.Output.PostsCSV)
	fmt.Printf("  Media directory: %s\n", cfg.Output.MediaDirectory)
	fmt.Printf("  Accepted types: %d\n", len(cfg.Archive.AcceptedTypes))
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
