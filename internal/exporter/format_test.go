package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "gradecli/internal/errors"
)

func TestFormatGrade(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{82, "82.0"},
		{60, "60.0"},
		{84.1, "84.1"},
		{0, "0.0"},
		{100, "100.0"},
		{70.1, "70.1"},
		{math.Copysign(0, -1), "0.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatGrade(tt.in))
	}
}

func TestWriterFor(t *testing.T) {
	tests := []struct {
		format string
		want   ReportWriter
	}{
		{"", TextWriter{}},
		{FormatText, TextWriter{}},
		{FormatCSV, CSVWriter{}},
		{FormatXLSX, XLSXWriter{}},
	}
	for _, tt := range tests {
		w, err := WriterFor(tt.format)
		require.NoError(t, err, tt.format)
		assert.IsType(t, tt.want, w)
	}

	_, err := WriterFor("pdf")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), `"pdf"`)
}
