// Package http implements the HTTP handlers of the grade report viewer.
// Handlers stay thin: they decode the request, call a service and render
// the result as JSON. Every failure goes through errors.ErrorHandler so
// clients always receive RFC 7807 problem details.
//
// # Routes
//
//	GET  /api/report            preview rows and warnings without writing
//	POST /api/report/generate   run the pipeline and write the output file
//	GET  /api/report/file       read back a written report (?name=)
//	GET  /api/report/files      list report files in the output directory
//	GET  /api/health            input file checks (?verbose=true adds uptime)
//	GET  /api/version           build information
//
// Services are consumed through ReportServiceInterface and
// HealthServiceInterface so handlers can be tested with mocks.
package http
