package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "gradecli/internal/errors"
	"gradecli/internal/validation"
	api "gradecli/pkg/contracts/api/v1"
)

// ReportHandler serves report previews, runs and written reports
type ReportHandler struct {
	service      ReportServiceInterface
	validator    *validation.RecordValidator
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *ReportHandler {
	return &ReportHandler{
		service:      service,
		validator:    validation.NewRecordValidator(),
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.Preview)
	r.Post("/generate", h.Generate)
	r.Get("/file", h.GetFile)
	r.Get("/files", h.ListFiles)

	return r
}

// Preview handles GET /api/report
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Preview(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// Generate handles POST /api/report/generate. The body is optional.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req api.ReportGenerateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "invalid generate request", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apperrors.ErrInvalidRequest)
		return
	}

	if err := h.validator.Request(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// GetFile handles GET /api/report/file?name=
func (h *ReportHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ReadReport(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// ListFiles handles GET /api/report/files
func (h *ReportHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListReports(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"files": reports,
		"count": len(reports),
	})
}
