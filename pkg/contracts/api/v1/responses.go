package api

import (
	"time"

	"gradecli/pkg/contracts/domain"
)

// ReportPreviewResponse is returned by GET /api/report.
type ReportPreviewResponse struct {
	Rows        []domain.ReportRow `json:"rows"`
	Warnings    []domain.Warning   `json:"warnings"`
	RowCount    int                `json:"row_count"`
	SkippedRows int                `json:"skipped_rows"`
}

// ReportGenerateResponse is returned by POST /api/report/generate.
type ReportGenerateResponse struct {
	RunID       string           `json:"run_id"`
	RowsWritten int              `json:"rows_written"`
	SkippedRows int              `json:"skipped_rows"`
	OutputPath  string           `json:"output_path"`
	Format      string           `json:"format"`
	Warnings    []domain.Warning `json:"warnings"`
	DurationMS  int64            `json:"duration_ms"`
}

// ReportFileResponse is returned by GET /api/report/file.
type ReportFileResponse struct {
	Path    string     `json:"path"`
	Header  []string   `json:"header"`
	Rows    [][]string `json:"rows"`
	ModTime time.Time  `json:"mod_time"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}
