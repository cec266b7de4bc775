package exporter

import (
	"io"
	"log/slog"

	"gradecli/internal/files"
	"gradecli/pkg/contracts/domain"
)

// WriteOptions controls how WriteFile places the report.
type WriteOptions struct {
	Format string
	// Atomic writes through a temp file and rename so a failed run never
	// leaves a partial report behind.
	Atomic bool
	Files  *files.Manager
}

// WriteFile encodes rows in opts.Format and writes them to path.
func WriteFile(path string, rows []domain.ReportRow, opts WriteOptions) error {
	writer, err := WriterFor(opts.Format)
	if err != nil {
		return err
	}

	m := opts.Files
	if m == nil {
		m = files.NewManager("", slog.Default())
	}

	return m.Write(path, opts.Atomic, func(w io.Writer) error {
		return writer.Write(w, rows)
	})
}
