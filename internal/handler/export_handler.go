package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/rollcall/internal/clipboard"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/response"
	"github.com/stemsi/rollcall/internal/service"
	"github.com/stemsi/rollcall/internal/validator"
)

// ExportHandler handles projections, file exports and the text report.
type ExportHandler struct {
	exportService *service.ExportService
	reportService *service.ReportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService *service.ExportService, reportService *service.ReportService) *ExportHandler {
	return &ExportHandler{exportService: exportService, reportService: reportService}
}

// Records godoc
// GET /api/v1/export/records
// Returns the projected records for the filter flags in the query string.
func (h *ExportHandler) Records(c *gin.Context) {
	cfg, ok := bindProjection(c)
	if !ok {
		return
	}
	records := h.exportService.Project(cfg)
	response.Success(c, http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// Spreadsheet godoc
// GET /api/v1/export/xlsx
// Downloads the projection as attendance_<date>.xlsx.
func (h *ExportHandler) Spreadsheet(c *gin.Context) {
	h.download(c, h.exportService.Spreadsheet)
}

// Text godoc
// GET /api/v1/export/txt
// Downloads the projection as attendance_<date>.txt.
func (h *ExportHandler) Text(c *gin.Context) {
	h.download(c, h.exportService.Text)
}

// ViewReport godoc
// POST /api/v1/report
// Renders the text report and copies it to the shared clipboard.
func (h *ExportHandler) ViewReport(c *gin.Context) {
	cfg, ok := bindProjection(c)
	if !ok {
		return
	}
	view := h.reportService.ViewAndCopy(c.Request.Context(), cfg)
	response.Success(c, http.StatusOK, gin.H{"report": view})
}

// Clipboard godoc
// GET /api/v1/report/clipboard
// Returns the last report copied to the shared clipboard.
func (h *ExportHandler) Clipboard(c *gin.Context) {
	text, err := h.reportService.Paste(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, clipboard.ErrEmpty):
			response.Fail(c, http.StatusNotFound, response.ErrClipboardEmpty)
		case errors.Is(err, clipboard.ErrUnavailable), errors.Is(err, service.ErrClipboardDisabled):
			response.Fail(c, http.StatusServiceUnavailable, response.ErrClipboardUnavailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"text": text})
}

func (h *ExportHandler) download(c *gin.Context, export func(model.ProjectionConfig) (*service.Artifact, error)) {
	cfg, ok := bindProjection(c)
	if !ok {
		return
	}

	artifact, err := export(cfg)
	if err != nil {
		if errors.Is(err, service.ErrEmptyExport) {
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNothingToExport)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Attachment(c, artifact.Filename, artifact.ContentType, artifact.Data)
}

func bindProjection(c *gin.Context) (model.ProjectionConfig, bool) {
	var cfg model.ProjectionConfig
	if fields := validator.BindQuery(c, &cfg); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return cfg, false
	}
	return cfg, true
}
