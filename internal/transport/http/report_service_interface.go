package http

import (
	"context"

	"gradecli/internal/files"
	"gradecli/pkg/contracts"
	api "gradecli/pkg/contracts/api/v1"
)

// ReportServiceInterface defines the report operations exposed over HTTP
type ReportServiceInterface interface {
	Preview(ctx context.Context) (*api.ReportPreviewResponse, error)
	Generate(ctx context.Context, req api.ReportGenerateRequest) (*api.ReportGenerateResponse, error)
	ReadReport(ctx context.Context, name string) (*api.ReportFileResponse, error)
	ListReports(ctx context.Context) ([]files.FileInfo, error)
}

// HealthServiceInterface defines the health operations exposed over HTTP
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context, verbose bool) api.HealthResponse
	Version() contracts.VersionInfo
}
