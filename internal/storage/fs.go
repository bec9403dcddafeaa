package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// ContentStore holds the raw bytes of uploaded videos, keyed by video id.
type ContentStore interface {
	Write(videoID string, filename string, data []byte) error
	Read(videoID string, filename string) ([]byte, error)
}

// FSContentStore implements ContentStore on the local filesystem.
type FSContentStore struct {
	baseDir string
}

var _ ContentStore = (*FSContentStore)(nil)

func NewFSContentStore(baseDir string) (*FSContentStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FSContentStore{baseDir: baseDir}, nil
}

func (s *FSContentStore) Write(videoID string, filename string, data []byte) error {
	videoDir := filepath.Join(s.baseDir, videoID)
	if err := os.MkdirAll(videoDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	filePath := filepath.Join(videoDir, filename)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write video file: %w", err)
	}

	return nil
}

func (s *FSContentStore) Read(videoID string, filename string) ([]byte, error) {
	fullPath := filepath.Join(s.baseDir, videoID, filename)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read video file: %w", err)
	}

	return data, nil
}

// Path returns the location a stored file would occupy, without touching disk.
func (s *FSContentStore) Path(videoID string, filename string) string {
	return filepath.Join(s.baseDir, videoID, filename)
}
