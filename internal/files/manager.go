package files

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "gradecli/internal/errors"
)

// WriteFunc streams report content into w.
type WriteFunc func(w io.Writer) error

// Manager writes report files relative to a base directory.
type Manager struct {
	baseDir string
	logger  *slog.Logger
}

// NewManager creates a manager rooted at baseDir. An empty baseDir means the
// working directory.
func NewManager(baseDir string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		baseDir: baseDir,
		logger:  logger.With(slog.String("component", "files")),
	}
}

// Resolve returns path joined onto the base directory unless it is absolute.
func (m *Manager) Resolve(path string) string {
	if filepath.IsAbs(path) || m.baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// WriteAtomic writes path through a temp file in the same directory. The temp
// file is synced and renamed over path only after fn succeeds; on any failure
// it is removed and an existing file at path is left untouched.
func (m *Manager) WriteAtomic(path string, fn WriteFunc) (err error) {
	fullPath := m.Resolve(path)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewIOError("mkdir", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".*.tmp")
	if err != nil {
		return apperrors.NewIOError("create", fullPath, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
				m.logger.Warn("Failed to remove temp file",
					slog.String("temp_path", tmpPath),
					slog.String("error", rmErr.Error()))
			}
		}
	}()

	if err = fn(tmp); err != nil {
		return apperrors.NewIOError("write", fullPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return apperrors.NewIOError("sync", fullPath, err)
	}
	if err = tmp.Close(); err != nil {
		return apperrors.NewIOError("close", fullPath, err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return apperrors.NewIOError("chmod", fullPath, err)
	}
	if err = os.Rename(tmpPath, fullPath); err != nil {
		return apperrors.NewIOError("rename", fullPath, err)
	}

	m.logger.Debug("Wrote file atomically",
		slog.String("path", fullPath))
	return nil
}

// WriteDirect truncates path and writes it in place. A failed write removes
// the partial file, so the previous content is lost either way.
func (m *Manager) WriteDirect(path string, fn WriteFunc) error {
	fullPath := m.Resolve(path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return apperrors.NewIOError("mkdir", filepath.Dir(fullPath), err)
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return apperrors.NewIOError("create", fullPath, err)
	}

	if err := fn(f); err != nil {
		f.Close()
		if rmErr := os.Remove(fullPath); rmErr != nil && !os.IsNotExist(rmErr) {
			m.logger.Warn("Failed to remove partial file",
				slog.String("path", fullPath),
				slog.String("error", rmErr.Error()))
		}
		return apperrors.NewIOError("write", fullPath, err)
	}
	if err := f.Close(); err != nil {
		return apperrors.NewIOError("close", fullPath, err)
	}

	m.logger.Debug("Wrote file", slog.String("path", fullPath))
	return nil
}

// Write picks WriteAtomic or WriteDirect.
func (m *Manager) Write(path string, atomic bool, fn WriteFunc) error {
	if atomic {
		return m.WriteAtomic(path, fn)
	}
	return m.WriteDirect(path, fn)
}

// Remove deletes path; a missing file is not an error.
func (m *Manager) Remove(path string) error {
	fullPath := m.Resolve(path)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return apperrors.NewIOError("remove", fullPath, err)
	}
	return nil
}
