package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "gradecli/internal/errors"
)

// FileValidator runs preflight checks on pipeline input and output paths
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputs checks that the roster and score files are readable.
func (v *FileValidator) ValidateInputs(rosterPath, scoresPath string) error {
	if err := v.ValidateFile(rosterPath); err != nil {
		return err
	}
	return v.ValidateFile(scoresPath)
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewIOError("mkdir", dir, err)
	}

	// Verify it's writable by creating a probe file
	probe, err := os.CreateTemp(dir, ".write_test-*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewIOError("write", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewIOError("stat", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewIOError("open", path, fmt.Errorf("is a directory, not a file"))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewIOError("open", path, err)
	}
	file.Close()

	if IsWorkbook(path) {
		if strings.HasPrefix(filepath.Base(path), "~$") {
			return apperrors.NewIOError("open", path, fmt.Errorf("is a temporary Excel lock file"))
		}
	}

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// IsWorkbook reports whether path names an Excel workbook.
func IsWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// CheckOutputExtension makes sure an xlsx report is not written to a file
// with a text extension and the other way round.
func CheckOutputExtension(path, format string) error {
	wantWorkbook := format == "xlsx"
	if IsWorkbook(path) != wantWorkbook {
		return apperrors.NewConfigError(
			fmt.Sprintf("output %s does not match report format %q", path, format), nil)
	}
	return nil
}
