package main

import (
	"fmt"

	"fbarchive/pkg/auth"
	"fbarchive/pkg/config"
	apperrors "fbarchive/pkg/errors"
	"fbarchive/pkg/facebook"
	"fbarchive/pkg/logger"
)

// loadConfig builds the effective configuration from defaults, config file,
// environment and command line flags, then initializes logging.
func loadConfig(flags map[string]interface{}) (*config.Config, logger.Logger, error) {
	if flags == nil {
		flags = map[string]interface{}{}
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	log := logger.GetLogger()

	return cfg, log, nil
}

// resolveToken returns the access token to use, trying the flag value,
// then the configuration (environment and config file), then any stored
// credential. A missing token is a configuration error.
func resolveToken(flagToken string, cfg *config.Config, log logger.Logger) (string, error) {
	if flagToken != "" {
		return flagToken, nil
	}
	if cfg.Facebook.AccessToken != "" {
		return cfg.Facebook.AccessToken, nil
	}

	manager, err := auth.NewManager()
	if err == nil {
		if cred, err := manager.RetrieveDefault(); err == nil && cred.AccessToken != "" {
			log.WithField("credential", cred.Name).Debug("Using stored credential")
			return cred.AccessToken, nil
		}
	}

	return "", &apperrors.Error{
		Type: apperrors.ErrorTypeConfig,
		Message: fmt.Sprintf("no access token configured: set %s, run 'fbarchive auth login', or pass --access-token",
			config.AccessTokenEnvName),
	}
}

// newGraphClient builds the HTTP client and endpoint set for a page walk.
func newGraphClient(cfg *config.Config, token string, log logger.Logger) (*facebook.Client, *facebook.Endpoints) {
	client := facebook.NewClient(cfg.Facebook.Timeout, log)
	endpoints := facebook.NewEndpoints(cfg.Facebook.BaseURL, cfg.Facebook.APIVersion, token)
	return client, endpoints
}
