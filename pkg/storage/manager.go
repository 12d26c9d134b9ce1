package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Manager handles media file storage. Files land directly under the output
// directory with no subdirectory structure.
type Manager struct {
	outputDir string
}

// NewManager creates a storage manager, creating the output directory if
// it does not exist
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{outputDir: outputDir}, nil
}

// SaveFile streams the reader's bytes to the named file. The data goes to
// a temporary file first and is renamed into place, so a re-run over a
// populated directory can never leave a half-written file under the final
// name.
func (m *Manager) SaveFile(r io.Reader, filename string) error {
	finalPath := filepath.Join(m.outputDir, filename)
	tempPath := finalPath + ".tmp"

	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save file data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Exists checks whether a file with the given name is already present
func (m *Manager) Exists(filename string) bool {
	_, err := os.Stat(filepath.Join(m.outputDir, filename))
	return err == nil
}

// OutputDir returns the output directory path
func (m *Manager) OutputDir() string {
	return m.outputDir
}
