// Package app wires the grade report viewer together: pipeline, services,
// HTTP handlers, middleware and the server lifecycle.
//
// # Initialization
//
//  1. The caller loads configuration and builds the logger and otel providers
//  2. NewApplication creates the pipeline and the report and health services
//  3. The chi router is assembled with middleware and the /api routes
//  4. Run serves until its context is cancelled
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger, providers)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// # Graceful Shutdown
//
// Run stops accepting connections when ctx is cancelled, waits up to
// Server.ShutdownTimeout for in-flight requests and flushes the otel
// providers. The package never calls os.Exit.
package app
