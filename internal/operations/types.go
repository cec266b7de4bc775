package operations

import (
	"time"

	"gradecli/internal/config"
	"gradecli/pkg/contracts/domain"
)

// Stage names, in execution order.
const (
	StageValidate    = "validate"
	StageParseRoster = "parse_roster"
	StageParseScores = "parse_scores"
	StageBuild       = "build"
	StageWrite       = "write"
)

// StepStatus represents the outcome of a stage
type StepStatus string

const (
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// Request names the inputs and output of one run.
type Request struct {
	RosterPath string `json:"roster_path"`
	ScoresPath string `json:"scores_path"`
	OutputPath string `json:"output_path"`
	Format     string `json:"format"`
	Atomic     bool   `json:"atomic"`
}

// RequestFromConfig builds a request from report settings, resolving
// relative paths against the configured base directory.
func RequestFromConfig(cfg config.ReportConfig) Request {
	cfg = cfg.Resolve()
	return Request{
		RosterPath: cfg.RosterPath,
		ScoresPath: cfg.ScoresPath,
		OutputPath: cfg.OutputPath,
		Format:     cfg.Format,
		Atomic:     cfg.Atomic,
	}
}

func (r Request) withDefaults() Request {
	if r.Format == "" {
		r.Format = "text"
	}
	return r
}

// StageResult records how one stage went.
type StageResult struct {
	Name     string        `json:"name"`
	Status   StepStatus    `json:"status"`
	Duration time.Duration `json:"duration"`
}

// Result summarizes a successful run.
type Result struct {
	RunID       string           `json:"run_id"`
	RowsWritten int              `json:"rows_written"`
	SkippedRows int              `json:"skipped_rows"`
	Warnings    []domain.Warning `json:"warnings,omitempty"`
	OutputPath  string           `json:"output_path"`
	Format      string           `json:"format"`
	Duration    time.Duration    `json:"duration"`
	Stages      []StageResult    `json:"stages"`
}
