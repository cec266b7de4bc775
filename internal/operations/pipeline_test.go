package operations

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradecli/internal/config"
	apperrors "gradecli/internal/errors"
	"gradecli/internal/exporter"
	"gradecli/internal/infrastructure"
	"gradecli/internal/shared/testutil"
	"gradecli/pkg/contracts/domain"
)

func newTestPipeline(t *testing.T) (*Pipeline, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, handler := testutil.NewTestLogger(t)
	p, err := NewPipeline(nil, logger)
	require.NoError(t, err)
	return p, handler
}

func requestFor(in testutil.SampleInputs) Request {
	return Request{
		RosterPath: in.RosterPath,
		ScoresPath: in.ScoresPath,
		OutputPath: in.OutputPath,
		Format:     exporter.FormatText,
		Atomic:     true,
	}
}

func assertNoOutput(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "output %s should not exist", path)
}

func TestRunWritesSampleReport(t *testing.T) {
	p, handler := newTestPipeline(t)
	in := testutil.WriteSampleInputs(t)

	res, err := p.Run(context.Background(), requestFor(in))
	require.NoError(t, err)

	assert.Equal(t, testutil.SampleReport, testutil.ReadFile(t, in.OutputPath))

	_, parseErr := uuid.Parse(res.RunID)
	assert.NoError(t, parseErr)
	assert.Equal(t, 4, res.RowsWritten)
	assert.Equal(t, 1, res.SkippedRows)
	assert.Equal(t, in.OutputPath, res.OutputPath)
	assert.Equal(t, exporter.FormatText, res.Format)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, domain.WarningUnresolvedReference, res.Warnings[0].Kind)
	assert.Equal(t, testutil.SampleUnresolvedID, res.Warnings[0].StudentID)

	var names []string
	for _, s := range res.Stages {
		names = append(names, s.Name)
		assert.Equal(t, StepStatusCompleted, s.Status)
	}
	assert.Equal(t, []string{StageValidate, StageParseRoster, StageParseScores, StageBuild, StageWrite}, names)

	assert.True(t, handler.ContainsAttr("run_id", res.RunID))
	assert.True(t, handler.ContainsMessage("run_complete"))
	assert.True(t, handler.ContainsMessage("Student ID S009 not found in name file. Skipping..."))
}

func TestRunEndToEndSmall(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteInputs(t,
		[]string{"S1,Alice", "S2,Bob"},
		[]string{"S1,CS101,80,90,70,85", "S2,CS101,60,60,60,60"})

	_, err := p.Run(context.Background(), requestFor(in))
	require.NoError(t, err)

	assert.Equal(t,
		"Student ID, Student Name, Course Code, Final Grade\nS1, Alice, CS101, 82.0\nS2, Bob, CS101, 60.0\n",
		testutil.ReadFile(t, in.OutputPath))
}

func TestRunNegativeZeroScores(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteInputs(t, []string{"S1,Alice"}, []string{"S1,CS101,-0,-0,-0,-0"})

	_, err := p.Run(context.Background(), requestFor(in))
	require.NoError(t, err)

	assert.Equal(t,
		"Student ID, Student Name, Course Code, Final Grade\nS1, Alice, CS101, 0.0\n",
		testutil.ReadFile(t, in.OutputPath))
}

func TestRunIsIdempotent(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteSampleInputs(t)

	_, err := p.Run(context.Background(), requestFor(in))
	require.NoError(t, err)
	first := testutil.ReadFile(t, in.OutputPath)

	_, err = p.Run(context.Background(), requestFor(in))
	require.NoError(t, err)
	assert.Equal(t, first, testutil.ReadFile(t, in.OutputPath))
}

func TestRunFatalErrors(t *testing.T) {
	tests := []struct {
		name      string
		roster    []string
		scores    []string
		wantKind  apperrors.Kind
		wantStage string
	}{
		{
			name:      "roster line without name",
			roster:    []string{"S1,Alice", "123"},
			scores:    []string{"S1,CS101,1,1,1,1"},
			wantKind:  apperrors.KindFormat,
			wantStage: StageParseRoster,
		},
		{
			name:      "score out of range",
			roster:    []string{"S1,Alice"},
			scores:    []string{"S1,CS101,80,90,70,101"},
			wantKind:  apperrors.KindValidation,
			wantStage: StageParseScores,
		},
		{
			name:      "score not a number",
			roster:    []string{"S1,Alice"},
			scores:    []string{"S1,CS101,eighty,90,70,85"},
			wantKind:  apperrors.KindFormat,
			wantStage: StageParseScores,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPipeline(t)
			in := testutil.WriteInputs(t, tt.roster, tt.scores)

			res, err := p.Run(context.Background(), requestFor(in))
			require.Error(t, err)
			assert.Nil(t, res)

			f := DescribeError(err)
			assert.Equal(t, tt.wantKind, f.Kind)
			assert.Equal(t, tt.wantStage, f.Stage)
			assertNoOutput(t, in.OutputPath)
		})
	}
}

func TestRunErrorNamesInputFile(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteInputs(t, []string{"123"}, []string{"S1,CS101,1,1,1,1"})

	_, err := p.Run(context.Background(), requestFor(in))

	var formatErr *apperrors.FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, in.RosterPath, formatErr.Source)
	assert.Equal(t, 1, formatErr.Line)
	assert.Equal(t, "123", formatErr.Raw)
}

func TestRunReadErrorNamesInputFile(t *testing.T) {
	p, _ := newTestPipeline(t)
	long := "S1," + strings.Repeat("A", 2<<20)
	in := testutil.WriteInputs(t, []string{long}, []string{"S1,CS101,1,1,1,1"})

	_, err := p.Run(context.Background(), requestFor(in))

	var ioErr *apperrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.Equal(t, in.RosterPath, ioErr.Path)
	assert.Contains(t, err.Error(), in.RosterPath)

	f := DescribeError(err)
	assert.Equal(t, apperrors.KindIO, f.Kind)
	assert.Equal(t, StageParseRoster, f.Stage)
	assertNoOutput(t, in.OutputPath)
}

func TestRunFailureKeepsExistingOutput(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteInputs(t, []string{"S1,Alice"}, []string{"S1,CS101,-1,0,0,0"})
	require.NoError(t, os.WriteFile(in.OutputPath, []byte("previous report\n"), 0o644))

	_, err := p.Run(context.Background(), requestFor(in))
	require.Error(t, err)

	assert.Equal(t, "previous report\n", testutil.ReadFile(t, in.OutputPath))
}

func TestRunMissingInput(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteSampleInputs(t)
	req := requestFor(in)
	req.RosterPath = filepath.Join(in.Dir, "missing.txt")

	_, err := p.Run(context.Background(), req)
	require.Error(t, err)

	assert.ErrorIs(t, err, fs.ErrNotExist)
	f := DescribeError(err)
	assert.Equal(t, apperrors.KindIO, f.Kind)
	assert.Equal(t, StageValidate, f.Stage)
	assertNoOutput(t, in.OutputPath)
}

func TestRunConfigErrors(t *testing.T) {
	in := testutil.WriteSampleInputs(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"unknown format", func(r *Request) { r.Format = "pdf" }},
		{"xlsx into txt", func(r *Request) { r.Format = exporter.FormatXLSX }},
		{"empty output", func(r *Request) { r.OutputPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPipeline(t)
			req := requestFor(in)
			tt.mutate(&req)

			_, err := p.Run(context.Background(), req)
			assert.Equal(t, apperrors.KindConfig, DescribeError(err).Kind)
			assertNoOutput(t, in.OutputPath)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteSampleInputs(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, requestFor(in))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	f := DescribeError(err)
	assert.Equal(t, apperrors.KindInternal, f.Kind)
	assert.Equal(t, StageValidate, f.Stage)
	assertNoOutput(t, in.OutputPath)
}

func TestRunFormats(t *testing.T) {
	tests := []struct {
		format string
		file   string
	}{
		{exporter.FormatCSV, "FinalGrades.csv"},
		{exporter.FormatXLSX, "FinalGrades.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			p, _ := newTestPipeline(t)
			in := testutil.WriteSampleInputs(t)
			req := requestFor(in)
			req.Format = tt.format
			req.OutputPath = filepath.Join(in.Dir, tt.file)

			res, err := p.Run(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, 4, res.RowsWritten)

			table, err := exporter.ReadReportFile(req.OutputPath)
			require.NoError(t, err)
			assert.Equal(t, exporter.Header, table.Header)
			require.Len(t, table.Rows, 4)
			assert.Equal(t, "S001", table.Rows[0][0])
			assert.Equal(t, "S003", table.Rows[3][0])
		})
	}
}

func TestRunNonAtomic(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteSampleInputs(t)
	req := requestFor(in)
	req.Atomic = false

	_, err := p.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleReport, testutil.ReadFile(t, in.OutputPath))
}

func TestRunWorkbookInputs(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteSampleInputs(t)

	rosterPath := filepath.Join(in.Dir, "NameFile.xlsx")
	var rosterRows [][]string
	for _, line := range testutil.SampleRosterLines {
		rosterRows = append(rosterRows, splitTrim(line))
	}
	testutil.WriteWorkbook(t, rosterPath, rosterRows)

	req := requestFor(in)
	req.RosterPath = rosterPath

	_, err := p.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleReport, testutil.ReadFile(t, in.OutputPath))
}

func TestPreview(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteInputs(t,
		[]string{"b,Ben", "a,Ann", "c,Cy", "a,Annie"},
		[]string{"b,X,1,1,1,1", "a,X,1,1,1,1", "c,X,1,1,1,1", "z,X,1,1,1,1"})

	report, err := p.Preview(context.Background(), requestFor(in))
	require.NoError(t, err)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, "a", report.Rows[0].StudentID)
	assert.Equal(t, "Annie", report.Rows[0].StudentName)
	assert.Equal(t, "b", report.Rows[1].StudentID)
	assert.Equal(t, "c", report.Rows[2].StudentID)

	require.Len(t, report.Warnings, 2)
	assert.Equal(t, domain.WarningDuplicateStudent, report.Warnings[0].Kind)
	assert.Equal(t, domain.WarningUnresolvedReference, report.Warnings[1].Kind)
	assert.Equal(t, 1, report.SkippedRows())

	assertNoOutput(t, in.OutputPath)
}

func TestPreviewIgnoresOutputSettings(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteSampleInputs(t)
	req := requestFor(in)
	req.Format = "pdf"
	req.OutputPath = ""

	report, err := p.Preview(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, report.Rows, 4)
}

func TestRunConcurrent(t *testing.T) {
	p, _ := newTestPipeline(t)
	in := testutil.WriteSampleInputs(t)

	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := p.Preview(context.Background(), requestFor(in))
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		assert.NoError(t, <-errs)
	}
}

func TestRequestFromConfig(t *testing.T) {
	cfg := config.Default().Report
	cfg.BaseDir = "/data/grades"

	req := RequestFromConfig(cfg)

	assert.Equal(t, filepath.Join("/data/grades", "NameFile.txt"), req.RosterPath)
	assert.Equal(t, filepath.Join("/data/grades", "CourseFile.txt"), req.ScoresPath)
	assert.Equal(t, filepath.Join("/data/grades", "FinalGrades.txt"), req.OutputPath)
	assert.Equal(t, "text", req.Format)
	assert.True(t, req.Atomic)
}

func TestRunRecordsMetrics(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{
		TraceExporter:  "stdout",
		MetricExporter: "prometheus",
		SampleRatio:    1,
	}, "test", io.Discard, logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(ctx)
	})

	p, err := NewPipeline(providers, logger)
	require.NoError(t, err)

	in := testutil.WriteSampleInputs(t)
	_, err = p.Run(context.Background(), requestFor(in))
	require.NoError(t, err)

	bad := testutil.WriteInputs(t, []string{"123"}, nil)
	_, err = p.Run(context.Background(), requestFor(bad))
	require.Error(t, err)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, "report_runs_total")
	assert.Contains(t, body, "report_run_errors_total")
	assert.Contains(t, body, `kind="format"`)
	assert.Contains(t, body, "report_rows_written_total")
	assert.Contains(t, body, "report_stage_duration_seconds")
}

func splitTrim(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
