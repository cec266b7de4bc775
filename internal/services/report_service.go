package services

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
	"gradecli/internal/exporter"
	"gradecli/internal/files"
	"gradecli/internal/operations"
	api "gradecli/pkg/contracts/api/v1"
	"gradecli/pkg/contracts/domain"
)

// ReportService serves report previews, runs and read-backs.
type ReportService struct {
	pipeline  *operations.Pipeline
	cfg       config.ReportConfig
	discovery *files.Discovery
	logger    *slog.Logger
}

// NewReportService creates a service bound to the configured report paths.
func NewReportService(pipeline *operations.Pipeline, cfg config.ReportConfig, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.Resolve()
	return &ReportService{
		pipeline:  pipeline,
		cfg:       cfg,
		discovery: files.NewDiscovery(filepath.Dir(cfg.OutputPath)),
		logger:    logger.With(slog.String("service", "report")),
	}
}

// Preview builds the report without writing it.
func (s *ReportService) Preview(ctx context.Context) (*api.ReportPreviewResponse, error) {
	report, err := s.pipeline.Preview(ctx, operations.RequestFromConfig(s.cfg))
	if err != nil {
		return nil, err
	}

	warnings := report.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}

	return &api.ReportPreviewResponse{
		Rows:        report.Rows,
		Warnings:    warnings,
		RowCount:    len(report.Rows),
		SkippedRows: report.SkippedRows(),
	}, nil
}

// Generate runs the pipeline. A format different from the configured one
// writes next to the configured output with that format's extension.
func (s *ReportService) Generate(ctx context.Context, req api.ReportGenerateRequest) (*api.ReportGenerateResponse, error) {
	runReq := operations.RequestFromConfig(s.cfg)
	if req.Format != "" && req.Format != runReq.Format {
		runReq.Format = req.Format
		runReq.OutputPath = withFormatExt(runReq.OutputPath, req.Format)
	}

	res, err := s.pipeline.Run(ctx, runReq)
	if err != nil {
		return nil, err
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}

	s.logger.InfoContext(ctx, "Report generated",
		slog.String("run_id", res.RunID),
		slog.String("output", res.OutputPath),
		slog.Int("rows", res.RowsWritten))

	return &api.ReportGenerateResponse{
		RunID:       res.RunID,
		RowsWritten: res.RowsWritten,
		SkippedRows: res.SkippedRows,
		OutputPath:  res.OutputPath,
		Format:      res.Format,
		Warnings:    warnings,
		DurationMS:  res.Duration.Milliseconds(),
	}, nil
}

// ReadReport loads a written report. An empty name means the configured
// output file; other names must be report files in the same directory.
func (s *ReportService) ReadReport(ctx context.Context, name string) (*api.ReportFileResponse, error) {
	path := s.cfg.OutputPath
	if name != "" {
		if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			return nil, apperrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid report name", name)
		}
		path = filepath.Join(filepath.Dir(s.cfg.OutputPath), name)
		if sameFile(path, s.cfg.RosterPath) || sameFile(path, s.cfg.ScoresPath) {
			return nil, apperrors.NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Input files cannot be read as reports", name)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, apperrors.NewIOError("stat", path, err)
	}

	table, err := exporter.ReadReportFile(path)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Report read",
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)))

	return &api.ReportFileResponse{
		Path:    path,
		Header:  table.Header,
		Rows:    table.Rows,
		ModTime: info.ModTime(),
	}, nil
}

// ListReports returns report files in the output directory, newest first.
func (s *ReportService) ListReports(ctx context.Context) ([]files.FileInfo, error) {
	found, err := s.discovery.FindReports(".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []files.FileInfo{}, nil
		}
		return nil, err
	}

	reports := make([]files.FileInfo, 0, len(found))
	for _, f := range found {
		if sameFile(f.Path, s.cfg.RosterPath) || sameFile(f.Path, s.cfg.ScoresPath) {
			continue
		}
		reports = append(reports, f)
	}
	return reports, nil
}

// InputPaths returns the resolved roster and score paths.
func (s *ReportService) InputPaths() (roster, scores string) {
	return s.cfg.RosterPath, s.cfg.ScoresPath
}

func withFormatExt(path, format string) string {
	ext := ".txt"
	switch format {
	case exporter.FormatCSV:
		ext = ".csv"
	case exporter.FormatXLSX:
		ext = ".xlsx"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
