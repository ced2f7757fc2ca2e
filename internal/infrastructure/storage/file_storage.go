package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jowenthebui/PO-Tracking/internal/application/port"
	"github.com/Jowenthebui/PO-Tracking/pkg/utils"
	"go.uber.org/zap"
)

// PublicPrefix is the URL prefix uploaded files are served under
const PublicPrefix = "/uploads/"

// LocalFileStorage implements port.FileStorage for local filesystem
type LocalFileStorage struct {
	baseDir string
	clock   port.Clock
	logger  *zap.Logger
}

// NewLocalFileStorage creates a new LocalFileStorage
func NewLocalFileStorage(baseDir string, clock port.Clock, logger *zap.Logger) *LocalFileStorage {
	return &LocalFileStorage{
		baseDir: baseDir,
		clock:   clock,
		logger:  logger,
	}
}

// maxNameAttempts bounds the suffixes tried when a stored name is taken
const maxNameAttempts = 1000

// Store writes content as <epoch-ms>_<sanitized original name>. An existing
// file is never overwritten: a taken name gets a _1, _2, ... suffix before
// its extension.
func (s *LocalFileStorage) Store(ctx context.Context, originalName string, content io.Reader) (*port.StoredFile, error) {
	base := fmt.Sprintf("%d_%s", s.clock.Now().UnixMilli(), utils.SanitizeFileName(originalName))

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		s.logger.Error("Failed to create upload directory",
			zap.String("path", s.baseDir),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	f, name, err := s.createUnique(base)
	if err != nil {
		return nil, err
	}
	fullPath := s.GetFullPath(name)

	size, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		s.logger.Error("Failed to write file", zap.String("path", fullPath), zap.Error(err))
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("File saved successfully",
		zap.String("path", fullPath),
		zap.Int64("size", size))

	return &port.StoredFile{
		Name:       name,
		PublicPath: PublicPrefix + name,
		Size:       size,
	}, nil
}

// createUnique opens a new file named base, or base with a numeric suffix
// when base already exists
func (s *LocalFileStorage) createUnique(base string) (*os.File, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 0; i < maxNameAttempts; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		fullPath := s.GetFullPath(name)
		if err := s.validatePath(fullPath); err != nil {
			return nil, "", err
		}

		f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, name, nil
		}
		if !os.IsExist(err) {
			s.logger.Error("Failed to create file", zap.String("path", fullPath), zap.Error(err))
			return nil, "", fmt.Errorf("failed to create file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s after %d attempts", base, maxNameAttempts)
}

// Delete removes a stored file. Missing files are not an error.
func (s *LocalFileStorage) Delete(ctx context.Context, name string) error {
	fullPath := s.GetFullPath(name)

	if err := s.validatePath(fullPath); err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to delete file",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Errorf("failed to delete file: %w", err)
	}

	s.logger.Debug("File deleted", zap.String("path", fullPath))
	return nil
}

// GetFullPath converts a stored name to its full path
func (s *LocalFileStorage) GetFullPath(name string) string {
	return filepath.Join(s.baseDir, name)
}

// EnsureBaseDir creates the upload directory if it does not exist
func (s *LocalFileStorage) EnsureBaseDir() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// BaseDir returns the upload directory
func (s *LocalFileStorage) BaseDir() string {
	return s.baseDir
}

// validatePath checks that the path is safe and within baseDir
func (s *LocalFileStorage) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s", fullPath)
	}

	return nil
}

// Verify interface compliance
var _ port.FileStorage = (*LocalFileStorage)(nil)
