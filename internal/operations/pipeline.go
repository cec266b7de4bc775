package operations

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"gradecli/internal/dataprocessing"
	apperrors "gradecli/internal/errors"
	"gradecli/internal/exporter"
	"gradecli/internal/files"
	"gradecli/internal/infrastructure"
	"gradecli/internal/validation"
	"gradecli/pkg/contracts/domain"
)

// Pipeline runs grade reports. It holds no per-run state, so one Pipeline
// can serve concurrent runs.
type Pipeline struct {
	logger    *slog.Logger
	tracer    *RunTracer
	files     *files.Manager
	validator *validation.FileValidator
}

// NewPipeline creates a pipeline. Nil providers disable telemetry.
func NewPipeline(providers *infrastructure.OTelProviders, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if providers == nil {
		providers = infrastructure.NoopOTel(logger)
	}

	tracer, err := NewRunTracer(providers)
	if err != nil {
		return nil, err
	}

	logger = infrastructure.WithComponent(logger, "pipeline")
	return &Pipeline{
		logger:    logger,
		tracer:    tracer,
		files:     files.NewManager("", logger),
		validator: validation.NewFileValidator(logger),
	}, nil
}

// run carries the state of one execution.
type run struct {
	id      string
	req     Request
	roster  *dataprocessing.RosterResult
	scores  []domain.CourseScore
	report  *domain.Report
	stages  []StageResult
	started time.Time
}

// Run produces the report described by req and writes it to req.OutputPath.
// No output is written if any earlier stage fails or ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	r, ctx, span := p.begin(ctx, opGenerate, req)
	defer span.End()

	err := p.execute(ctx, r, true)

	var res *Result
	if err == nil {
		res = r.result()
	}
	p.finish(ctx, span, opGenerate, r, res, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Preview runs every stage except write and returns the report with all
// warnings, roster duplicates included.
func (p *Pipeline) Preview(ctx context.Context, req Request) (*domain.Report, error) {
	r, ctx, span := p.begin(ctx, opPreview, req)
	defer span.End()

	err := p.execute(ctx, r, false)

	var res *Result
	if err == nil {
		res = r.result()
	}
	p.finish(ctx, span, opPreview, r, res, err)
	if err != nil {
		return nil, err
	}
	return r.merged(), nil
}

func (p *Pipeline) begin(ctx context.Context, op string, req Request) (*run, context.Context, trace.Span) {
	r := &run{
		id:      uuid.NewString(),
		req:     req.withDefaults(),
		started: time.Now(),
	}
	if infrastructure.GetTraceID(ctx) == "" {
		ctx = infrastructure.WithTraceID(ctx, r.id)
	}
	ctx, span := p.tracer.TraceRun(ctx, r.id, op, r.req)
	p.logRunStart(ctx, r.id, op, r.req)
	return r, ctx, span
}

func (p *Pipeline) finish(ctx context.Context, span trace.Span, op string, r *run, res *Result, err error) {
	duration := time.Since(r.started)
	p.tracer.RecordRunCompletion(ctx, span, op, duration, res, err)
	if err != nil {
		p.logRunError(ctx, r.id, err)
		return
	}
	p.logWarnings(ctx, res.Warnings)
	p.logRunComplete(ctx, r.id, duration, res.RowsWritten, res.SkippedRows)
}

type stageFunc func(context.Context, *run) error

type stage struct {
	name string
	fn   stageFunc
}

func (p *Pipeline) execute(ctx context.Context, r *run, write bool) error {
	steps := []stage{
		{StageValidate, func(_ context.Context, r *run) error { return p.validate(r.req, write) }},
		{StageParseRoster, p.parseRoster},
		{StageParseScores, p.parseScores},
		{StageBuild, p.build},
	}
	if write {
		steps = append(steps, stage{StageWrite, p.write})
	}

	for i, step := range steps {
		if err := p.runStage(ctx, r, step.name, step.fn); err != nil {
			for _, rest := range steps[i+1:] {
				r.stages = append(r.stages, StageResult{Name: rest.name, Status: StepStatusSkipped})
			}
			return err
		}
	}
	return nil
}

func (p *Pipeline) runStage(ctx context.Context, r *run, name string, fn stageFunc) error {
	if err := ctx.Err(); err != nil {
		r.stages = append(r.stages, StageResult{Name: name, Status: StepStatusSkipped})
		return &StageError{Stage: name, Err: err}
	}

	ctx, span := p.tracer.TraceStage(ctx, r.id, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx, r)
	duration := time.Since(start)

	p.tracer.RecordStageCompletion(ctx, span, name, duration, err)
	if err != nil {
		r.stages = append(r.stages, StageResult{Name: name, Status: StepStatusFailed, Duration: duration})
		return &StageError{Stage: name, Err: err}
	}

	r.stages = append(r.stages, StageResult{Name: name, Status: StepStatusCompleted, Duration: duration})
	p.logStageComplete(ctx, name, duration)
	return nil
}

func (p *Pipeline) validate(req Request, write bool) error {
	if write {
		if _, err := exporter.WriterFor(req.Format); err != nil {
			return err
		}
		if req.OutputPath == "" {
			return apperrors.NewConfigError("output path is empty", nil)
		}
		if err := validation.CheckOutputExtension(req.OutputPath, req.Format); err != nil {
			return err
		}
	}
	return p.validator.ValidateInputs(req.RosterPath, req.ScoresPath)
}

func (p *Pipeline) parseRoster(_ context.Context, r *run) error {
	in, err := dataprocessing.OpenInput(r.req.RosterPath)
	if err != nil {
		return err
	}
	defer in.Close()

	roster, err := dataprocessing.ParseRoster(in)
	if err != nil {
		return attachPath(err, r.req.RosterPath)
	}
	r.roster = roster
	return nil
}

func (p *Pipeline) parseScores(_ context.Context, r *run) error {
	in, err := dataprocessing.OpenInput(r.req.ScoresPath)
	if err != nil {
		return err
	}
	defer in.Close()

	scores, err := dataprocessing.ParseScores(in)
	if err != nil {
		return attachPath(err, r.req.ScoresPath)
	}
	r.scores = scores
	return nil
}

func (p *Pipeline) build(_ context.Context, r *run) error {
	r.report = dataprocessing.BuildReport(r.roster.Roster, r.scores)
	return nil
}

func (p *Pipeline) write(_ context.Context, r *run) error {
	if err := p.validator.ValidateOutputDirectory(filepath.Dir(r.req.OutputPath)); err != nil {
		return err
	}
	return exporter.WriteFile(r.req.OutputPath, r.report.Rows, exporter.WriteOptions{
		Format: r.req.Format,
		Atomic: r.req.Atomic,
		Files:  p.files,
	})
}

// merged returns the built report with roster warnings ahead of score warnings.
func (r *run) merged() *domain.Report {
	warnings := make([]domain.Warning, 0, len(r.roster.Warnings)+len(r.report.Warnings))
	warnings = append(warnings, r.roster.Warnings...)
	warnings = append(warnings, r.report.Warnings...)
	return &domain.Report{Rows: r.report.Rows, Warnings: warnings}
}

func (r *run) result() *Result {
	report := r.merged()
	return &Result{
		RunID:       r.id,
		RowsWritten: len(report.Rows),
		SkippedRows: report.SkippedRows(),
		Warnings:    report.Warnings,
		OutputPath:  r.req.OutputPath,
		Format:      r.req.Format,
		Duration:    time.Since(r.started),
		Stages:      r.stages,
	}
}
