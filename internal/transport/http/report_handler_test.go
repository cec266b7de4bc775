package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "gradecli/internal/errors"
	"gradecli/internal/files"
	"gradecli/internal/shared/testutil"
	api "gradecli/pkg/contracts/api/v1"
	"gradecli/pkg/contracts/domain"
)

// MockReportService is a mock implementation of ReportServiceInterface
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Preview(ctx context.Context) (*api.ReportPreviewResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ReportPreviewResponse), args.Error(1)
}

func (m *MockReportService) Generate(ctx context.Context, req api.ReportGenerateRequest) (*api.ReportGenerateResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ReportGenerateResponse), args.Error(1)
}

func (m *MockReportService) ReadReport(ctx context.Context, name string) (*api.ReportFileResponse, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ReportFileResponse), args.Error(1)
}

func (m *MockReportService) ListReports(ctx context.Context) ([]files.FileInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]files.FileInfo), args.Error(1)
}

func newReportRouter(t *testing.T, svc ReportServiceInterface) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewReportHandler(svc, logger, apperrors.NewErrorHandler(logger, false))

	r := chi.NewRouter()
	r.Mount("/api/report", h.Routes())
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestReportHandler_Preview(t *testing.T) {
	svc := new(MockReportService)
	svc.On("Preview").Return(&api.ReportPreviewResponse{
		Rows: []domain.ReportRow{
			{StudentID: "S1", StudentName: "Alice", CourseCode: "CS101", FinalGrade: 82},
		},
		Warnings: []domain.Warning{},
		RowCount: 1,
	}, nil)

	rec := serve(newReportRouter(t, svc), http.MethodGet, "/api/report", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["row_count"])
	svc.AssertExpectations(t)
}

func TestReportHandler_PreviewErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantKind   string
	}{
		{
			name:       "malformed input",
			err:        &apperrors.FormatError{Source: "NameFile.txt", Line: 2, Raw: "123", Reason: "expected 2 fields, got 1"},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apperrors.TypeMalformed,
			wantKind:   "format",
		},
		{
			name:       "invalid score",
			err:        &apperrors.ValidationError{Source: "CourseFile.txt", Line: 1, Field: "test1", Reason: "must be at most 100"},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apperrors.TypeValidation,
			wantKind:   "validation",
		},
		{
			name:       "config",
			err:        apperrors.NewConfigError("unsupported report format \"pdf\"", nil),
			wantStatus: http.StatusInternalServerError,
			wantType:   apperrors.TypeConfigError,
			wantKind:   "config",
		},
		{
			name:       "cancelled",
			err:        context.Canceled,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   apperrors.TypeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			svc.On("Preview").Return(nil, tt.err)

			rec := serve(newReportRouter(t, svc), http.MethodGet, "/api/report", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			if tt.wantKind != "" {
				assert.Equal(t, tt.wantKind, body["kind"])
			}
			assert.Contains(t, body, "trace_id")
		})
	}
}

func TestReportHandler_Generate(t *testing.T) {
	resp := &api.ReportGenerateResponse{RunID: "run-1", RowsWritten: 4, Format: "text", Warnings: []domain.Warning{}}

	tests := []struct {
		name string
		body string
		want api.ReportGenerateRequest
	}{
		{name: "empty body", body: "", want: api.ReportGenerateRequest{}},
		{name: "empty object", body: "{}", want: api.ReportGenerateRequest{}},
		{name: "csv", body: `{"format":"csv"}`, want: api.ReportGenerateRequest{Format: "csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			svc.On("Generate", tt.want).Return(resp, nil)

			rec := serve(newReportRouter(t, svc), http.MethodPost, "/api/report/generate", tt.body)

			assert.Equal(t, http.StatusCreated, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, "run-1", body["run_id"])
			svc.AssertExpectations(t)
		})
	}
}

func TestReportHandler_GenerateRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantDetails bool
	}{
		{name: "broken json", body: `{"format":`},
		{name: "unknown format", body: `{"format":"pdf"}`, wantDetails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)

			rec := serve(newReportRouter(t, svc), http.MethodPost, "/api/report/generate", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, apperrors.TypeValidation, body["type"])
			assert.Equal(t, "INVALID_REQUEST", body["error_code"])
			if tt.wantDetails {
				assert.Contains(t, body, "details")
			}
			svc.AssertNotCalled(t, "Generate", mock.Anything)
		})
	}
}

func TestReportHandler_GetFile(t *testing.T) {
	svc := new(MockReportService)
	svc.On("ReadReport", "FinalGrades.txt").Return(&api.ReportFileResponse{
		Path:   "/data/FinalGrades.txt",
		Header: []string{"Student ID", "Student Name", "Course Code", "Final Grade"},
		Rows:   [][]string{{"S1", "Alice", "CS101", "82.0"}},
	}, nil)
	svc.On("ReadReport", "missing.txt").Return(nil, apperrors.ErrReportNotFound)

	router := newReportRouter(t, svc)

	rec := serve(router, http.MethodGet, "/api/report/file?name=FinalGrades.txt", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "/data/FinalGrades.txt", body["path"])

	rec = serve(router, http.MethodGet, "/api/report/file?name=missing.txt", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, apperrors.TypeNotFound, body["type"])
	assert.Equal(t, "REPORT_NOT_FOUND", body["error_code"])
}

func TestReportHandler_ListFiles(t *testing.T) {
	svc := new(MockReportService)
	svc.On("ListReports").Return([]files.FileInfo{
		{Path: "/data/FinalGrades.txt", Name: "FinalGrades.txt", Size: 120},
		{Path: "/data/FinalGrades.csv", Name: "FinalGrades.csv", Size: 118},
	}, nil)

	rec := serve(newReportRouter(t, svc), http.MethodGet, "/api/report/files", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 2, body["count"])
	assert.Len(t, body["files"], 2)
}
