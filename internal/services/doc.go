// Package services sits between the HTTP handlers and the report pipeline.
//
// ReportService previews, generates and reads back reports for the inputs
// named in configuration; request bodies can only pick the output format.
// HealthService reports whether those inputs are currently readable.
package services
