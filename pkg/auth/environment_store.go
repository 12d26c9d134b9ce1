package auth

import (
	"os"
	"time"

	"fbarchive/pkg/config"
)

// EnvironmentStore implements CredentialStore using environment variables.
// This covers the plain .env workflow: godotenv loads the file into the
// environment and the token is picked up here.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(cred *Credential) error {
	return ErrStoreUnavailable
}

// Retrieve gets the token from the environment
func (e *EnvironmentStore) Retrieve(name string) (*Credential, error) {
	token := os.Getenv(config.AccessTokenEnvName)
	if token == "" {
		return nil, ErrCredentialsNotFound
	}

	// Environment variables carry no name, so fall back to "default"
	if name == "" {
		name = "default"
	}

	return &Credential{
		Name:         name,
		AccessToken:  token,
		LastModified: time.Now(),
	}, nil
}

// List returns a single credential if the environment variable is set
func (e *EnvironmentStore) List() ([]*Credential, error) {
	cred, err := e.Retrieve("")
	if err != nil {
		return []*Credential{}, nil
	}
	return []*Credential{cred}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(name string) error {
	return ErrStoreUnavailable
}

// Exists checks if the environment credential is set
func (e *EnvironmentStore) Exists(name string) bool {
	return os.Getenv(config.AccessTokenEnvName) != ""
}
