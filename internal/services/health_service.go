package services

import (
	"context"
	"log/slog"
	"time"

	"gradecli/internal/config"
	"gradecli/pkg/contracts"
	api "gradecli/pkg/contracts/api/v1"
)

// Health states reported by HealthCheck.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	reports   *ReportService
	startTime time.Time
	logger    *slog.Logger
}

// NewHealthService creates a health service that checks the inputs of reports.
func NewHealthService(version string, reports *ReportService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		reports:   reports,
		startTime: time.Now(),
		logger:    logger.With(slog.String("service", "health")),
	}
}

// HealthCheck reports ok when both input files exist, degraded otherwise.
// The viewer keeps serving in the degraded state.
func (hs *HealthService) HealthCheck(ctx context.Context, verbose bool) api.HealthResponse {
	resp := api.HealthResponse{
		Status:    StatusOK,
		Version:   hs.version,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]string, 3),
	}

	roster, scores := hs.reports.InputPaths()
	for name, path := range map[string]string{"roster": roster, "scores": scores} {
		if config.FileExists(path) {
			resp.Checks[name] = StatusOK
			continue
		}
		resp.Checks[name] = "missing: " + path
		resp.Status = StatusDegraded
	}

	if verbose {
		resp.Checks["uptime"] = time.Since(hs.startTime).Round(time.Second).String()
	}

	if resp.Status != StatusOK {
		hs.logger.WarnContext(ctx, "Health check degraded", slog.Any("checks", resp.Checks))
	}
	return resp
}

// Version returns build information.
func (hs *HealthService) Version() contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	if hs.version != "" {
		info.Version = hs.version
	}
	return info
}
