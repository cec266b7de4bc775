package operations

import (
	"context"
	"log/slog"
	"time"

	"gradecli/pkg/contracts/domain"
)

func (p *Pipeline) logRunStart(ctx context.Context, runID, op string, req Request) {
	p.logger.InfoContext(ctx, "run_start",
		slog.String("run_id", runID),
		slog.String("operation", op),
		slog.String("roster", req.RosterPath),
		slog.String("scores", req.ScoresPath),
		slog.String("output", req.OutputPath),
		slog.String("format", req.Format),
		slog.Bool("atomic", req.Atomic))
}

func (p *Pipeline) logRunComplete(ctx context.Context, runID string, duration time.Duration, rows, skipped int) {
	p.logger.InfoContext(ctx, "run_complete",
		slog.String("run_id", runID),
		slog.Int("rows", rows),
		slog.Int("skipped", skipped),
		slog.Duration("duration", duration))
}

func (p *Pipeline) logRunError(ctx context.Context, runID string, err error) {
	f := DescribeError(err)
	p.logger.ErrorContext(ctx, "run_error",
		slog.String("run_id", runID),
		slog.String("kind", string(f.Kind)),
		slog.String("stage", f.Stage),
		slog.String("error", f.Message))
}

func (p *Pipeline) logStageComplete(ctx context.Context, stage string, duration time.Duration) {
	p.logger.DebugContext(ctx, "stage_complete",
		slog.String("stage", stage),
		slog.Duration("duration", duration))
}

func (p *Pipeline) logWarnings(ctx context.Context, warnings []domain.Warning) {
	for _, w := range warnings {
		p.logger.WarnContext(ctx, w.Message,
			slog.String("kind", string(w.Kind)),
			slog.String("student_id", w.StudentID))
	}
}
