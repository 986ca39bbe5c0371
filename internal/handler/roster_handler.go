package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/rollcall/internal/response"
	"github.com/stemsi/rollcall/internal/service"
)

// multipartOverhead is the slack allowed beyond the file limit for form
// boundaries and part headers.
const multipartOverhead = 1 << 20

// RosterHandler handles loading and reading the roster.
type RosterHandler struct {
	rosterService  *service.RosterService
	maxUploadBytes int64
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(rosterService *service.RosterService, maxUploadBytes int64) *RosterHandler {
	return &RosterHandler{rosterService: rosterService, maxUploadBytes: maxUploadBytes}
}

// GetRoster godoc
// GET /api/v1/roster
// Returns every entry with its mark and the attendance summary.
func (h *RosterHandler) GetRoster(c *gin.Context) {
	entries, summary := h.rosterService.Roster()
	response.Success(c, http.StatusOK, gin.H{
		"entries": entries,
		"summary": summary,
		"status":  h.rosterService.Status(),
	})
}

// GetStatus godoc
// GET /api/v1/roster/status
// Returns the outcome of the latest load attempt.
func (h *RosterHandler) GetStatus(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": h.rosterService.Status()})
}

// Upload godoc
// POST /api/v1/roster/upload
// Replaces the roster with an uploaded JSON file (multipart field "file").
// A failed upload leaves the current roster untouched.
func (h *RosterHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		bodyLimit := h.maxUploadBytes + multipartOverhead
		if c.Request.ContentLength > bodyLimit {
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
			return
		}
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}

	if _, err := h.rosterService.LoadReader(file, header.Filename, h.maxUploadBytes); err != nil {
		if errors.Is(err, service.ErrRosterLoad) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrRosterLoadFailed,
				map[string]string{"detail": err.Error()})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	entries, summary := h.rosterService.Roster()
	response.Success(c, http.StatusOK, gin.H{
		"entries": entries,
		"summary": summary,
		"status":  h.rosterService.Status(),
	})
}

// Reload godoc
// POST /api/v1/roster/reload
// Re-reads the well-known roster file. Failure is reported in the status,
// not as an error, and the current roster stays active.
func (h *RosterHandler) Reload(c *gin.Context) {
	status := h.rosterService.AutoLoad()
	response.Success(c, http.StatusOK, gin.H{"status": status})
}
