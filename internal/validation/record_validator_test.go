package validation

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gradecli/internal/errors"
	api "gradecli/pkg/contracts/api/v1"
	"gradecli/pkg/contracts/domain"
)

func TestRecord(t *testing.T) {
	valid := domain.CourseScore{StudentID: "S1", CourseCode: "CS101", Test1: 80, Test2: 90, Test3: 70, FinalExam: 85}

	tests := []struct {
		name      string
		record    interface{}
		wantField string
		wantIn    string
	}{
		{name: "valid score", record: valid},
		{name: "boundary values", record: domain.CourseScore{StudentID: "S1", CourseCode: "X", Test1: 0, Test2: 100, Test3: 0, FinalExam: 100}},
		{
			name:      "empty student id",
			record:    domain.CourseScore{CourseCode: "CS101"},
			wantField: "student_id",
			wantIn:    "must not be empty",
		},
		{
			name:      "score above range",
			record:    domain.CourseScore{StudentID: "S1", CourseCode: "CS101", Test1: 100.5},
			wantField: "test1",
			wantIn:    "must be at most 100",
		},
		{
			name:      "negative exam",
			record:    domain.CourseScore{StudentID: "S1", CourseCode: "CS101", FinalExam: -1},
			wantField: "final_exam",
			wantIn:    "must be at least 0",
		},
		{
			name:      "student without name",
			record:    domain.Student{ID: "S1"},
			wantField: "student_name",
			wantIn:    "must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Record("scores", 7, "raw line", tt.record)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var vErr *apperrors.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, 7, vErr.Line)
			assert.Equal(t, "raw line", vErr.Raw)
			assert.Contains(t, vErr.Reason, tt.wantIn)
		})
	}
}

func TestRecordReportsFirstField(t *testing.T) {
	err := Record("scores", 1, "x", domain.CourseScore{Test1: -5})

	var vErr *apperrors.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "student_id", vErr.Field)
}

func TestRequest(t *testing.T) {
	v := NewRecordValidator()

	assert.NoError(t, v.Request(api.ReportGenerateRequest{}))
	assert.NoError(t, v.Request(api.ReportGenerateRequest{Format: "xlsx"}))

	err := v.Request(api.ReportGenerateRequest{Format: "pdf"})
	require.Error(t, err)

	var apiErr *apperrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	details, ok := apiErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details["format"], "must be one of")
}
