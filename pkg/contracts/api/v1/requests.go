// Package api contains the HTTP contract of the grade report viewer.
// Version v1 represents the current stable API version.
package api

// ReportGenerateRequest is the optional body of POST /api/report/generate.
// Input and output paths always come from server configuration.
type ReportGenerateRequest struct {
	Format string `json:"format,omitempty" validate:"omitempty,oneof=text csv xlsx"`
}

// HealthCheckRequest represents a health check request
type HealthCheckRequest struct {
	Verbose bool `json:"verbose" query:"verbose"`
}
