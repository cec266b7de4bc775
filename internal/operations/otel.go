package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "gradecli/internal/errors"
	"gradecli/internal/infrastructure"
)

const (
	opGenerate = "generate"
	opPreview  = "preview"
)

// RunTracer provides OpenTelemetry instrumentation for pipeline runs
type RunTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.ReportMetrics
}

// NewRunTracer creates a tracer backed by providers.
func NewRunTracer(providers *infrastructure.OTelProviders) (*RunTracer, error) {
	metrics, err := infrastructure.CreateReportMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create report metrics: %w", err)
	}

	return &RunTracer{
		tracer:  providers.Tracer,
		metrics: metrics,
	}, nil
}

// TraceRun starts the span that covers a whole run.
func (rt *RunTracer) TraceRun(ctx context.Context, runID, op string, req Request) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, "report."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.operation", op),
			attribute.String("report.roster_path", req.RosterPath),
			attribute.String("report.scores_path", req.ScoresPath),
			attribute.String("report.output_path", req.OutputPath),
			attribute.String("report.format", req.Format),
		),
	)
}

// TraceStage starts a child span for one stage.
func (rt *RunTracer) TraceStage(ctx context.Context, runID, stage string) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, "report.stage."+stage,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("stage.name", stage),
		),
	)
}

// RecordStageCompletion closes out a stage span and records its duration.
func (rt *RunTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stage string, duration time.Duration, err error) {
	status := string(StepStatusCompleted)
	if err != nil {
		status = string(StepStatusFailed)
	}

	span.SetAttributes(
		attribute.String("stage.status", status),
		attribute.Float64("stage.duration_seconds", duration.Seconds()),
	)

	rt.metrics.StageDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("status", status),
		),
	)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "")
}

// RecordRunCompletion records run level metrics and the final span status.
func (rt *RunTracer) RecordRunCompletion(ctx context.Context, span trace.Span, op string, duration time.Duration, res *Result, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	opAttr := attribute.String("operation", op)

	rt.metrics.RunsTotal.Add(ctx, 1,
		metric.WithAttributes(opAttr, attribute.String("status", status)))
	rt.metrics.RunDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(opAttr, attribute.String("status", status)))

	if err != nil {
		rt.metrics.RunErrors.Add(ctx, 1,
			metric.WithAttributes(opAttr, attribute.String("kind", string(apperrors.KindOf(err)))))
		infrastructure.RecordError(ctx, err)
		return
	}

	if res != nil {
		span.SetAttributes(
			attribute.Int("report.rows", res.RowsWritten),
			attribute.Int("report.skipped_rows", res.SkippedRows),
		)
		if op == opGenerate {
			rt.metrics.RowsWritten.Add(ctx, int64(res.RowsWritten))
		}
		rt.metrics.RowsSkipped.Add(ctx, int64(res.SkippedRows), metric.WithAttributes(opAttr))
	}
	span.SetStatus(codes.Ok, "")
}
