package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AccessTokenEnvName is the environment variable holding the page access token
const AccessTokenEnvName = "FB_PAGE_ACCESS_TOKEN"

// Config holds all configuration options for the Facebook page archiver
type Config struct {
	// Graph API settings and credential
	Facebook FacebookConfig `yaml:"facebook" json:"facebook"`

	// Archive pipeline settings
	Archive ArchiveConfig `yaml:"archive" json:"archive"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// FacebookConfig holds Graph API configuration
type FacebookConfig struct {
	AccessToken string        `yaml:"access_token" json:"access_token"`
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	APIVersion  string        `yaml:"api_version" json:"api_version"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// ArchiveConfig holds extraction pipeline configuration
type ArchiveConfig struct {
	// AcceptedTypes is the attachment type allow-list; anything else is skipped
	AcceptedTypes []string `yaml:"accepted_types" json:"accepted_types"`
}

// OutputConfig holds output file configuration
type OutputConfig struct {
	MediaCSV       string `yaml:"media_csv" json:"media_csv"`
	PostsCSV       string `yaml:"posts_csv" json:"posts_csv"`
	MediaDirectory string `yaml:"media_directory" json:"media_directory"`
}

// DownloadConfig holds downloader configuration
type DownloadConfig struct {
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// SupportedFormats is the file extension allow-list for downloads
	SupportedFormats []string `yaml:"supported_formats" json:"supported_formats"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Facebook: FacebookConfig{
			BaseURL:    "https://graph.facebook.com",
			APIVersion: "v20.0",
			Timeout:    30 * time.Second,
		},
		Archive: ArchiveConfig{
			AcceptedTypes: []string{
				"album",
				"photo",
				"cover_photo",
				"profile_media",
				"animated_image_autoplay",
				"video",
				"video_inline",
				"video_autoplay",
				"music",
			},
		},
		Output: OutputConfig{
			MediaCSV:       "output/facebook_page_media.csv",
			PostsCSV:       "output/facebook_page_posts.csv",
			MediaDirectory: "output/media",
		},
		Download: DownloadConfig{
			Timeout:          60 * time.Second,
			SupportedFormats: []string{"jpeg", "jpg", "png", "mp3", "mp4"},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if token := os.Getenv(AccessTokenEnvName); token != "" {
		c.Facebook.AccessToken = token
	}
	if baseURL := os.Getenv("FBARCHIVE_BASE_URL"); baseURL != "" {
		c.Facebook.BaseURL = baseURL
	}
	if apiVersion := os.Getenv("FBARCHIVE_API_VERSION"); apiVersion != "" {
		c.Facebook.APIVersion = apiVersion
	}
	if mediaCSV := os.Getenv("FBARCHIVE_MEDIA_CSV"); mediaCSV != "" {
		c.Output.MediaCSV = mediaCSV
	}
	if postsCSV := os.Getenv("FBARCHIVE_POSTS_CSV"); postsCSV != "" {
		c.Output.PostsCSV = postsCSV
	}
	if mediaDir := os.Getenv("FBARCHIVE_MEDIA_DIR"); mediaDir != "" {
		c.Output.MediaDirectory = mediaDir
	}
	if logLevel := os.Getenv("FBARCHIVE_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".fbarchive.yaml",
		".fbarchive.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "fbarchive", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "fbarchive", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".fbarchive.yaml"),
		filepath.Join(os.Getenv("HOME"), ".fbarchive.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. The access token is not
// checked here because the download stage works without one; commands that
// talk to the Graph API validate it themselves.
func (c *Config) Validate() error {
	var errs []error

	if c.Facebook.BaseURL == "" {
		errs = append(errs, errors.New("Graph API base URL is required"))
	}
	if c.Facebook.APIVersion == "" {
		errs = append(errs, errors.New("Graph API version is required"))
	}
	if c.Facebook.Timeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if len(c.Archive.AcceptedTypes) == 0 {
		errs = append(errs, errors.New("accepted attachment types must not be empty"))
	}

	if c.Output.MediaCSV == "" {
		errs = append(errs, errors.New("media CSV path is required"))
	}
	if c.Output.PostsCSV == "" {
		errs = append(errs, errors.New("posts CSV path is required"))
	}
	if c.Output.MediaDirectory == "" {
		errs = append(errs, errors.New("media output directory is required"))
	}

	if c.Download.Timeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}
	if len(c.Download.SupportedFormats) == 0 {
		errs = append(errs, errors.New("supported download formats must not be empty"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["access-token"].(string); ok && token != "" {
		c.Facebook.AccessToken = token
	}
	if mediaCSV, ok := flags["media-csv"].(string); ok && mediaCSV != "" {
		c.Output.MediaCSV = mediaCSV
	}
	if postsCSV, ok := flags["posts-csv"].(string); ok && postsCSV != "" {
		c.Output.PostsCSV = postsCSV
	}
	if mediaDir, ok := flags["media-dir"].(string); ok && mediaDir != "" {
		c.Output.MediaDirectory = mediaDir
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".fbarchive.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
