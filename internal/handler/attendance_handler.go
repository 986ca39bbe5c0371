package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/rollcall/internal/model"
	"github.com/stemsi/rollcall/internal/repository"
	"github.com/stemsi/rollcall/internal/response"
	"github.com/stemsi/rollcall/internal/service"
	"github.com/stemsi/rollcall/internal/validator"
)

// AttendanceHandler handles marking roster entries.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// SetMarkRequest chooses present or absent for one entry.
type SetMarkRequest struct {
	Mark string `json:"mark" binding:"required,explicit_mark"`
}

// BulkMarkRequest sets every entry at once.
type BulkMarkRequest struct {
	Mark string `json:"mark" binding:"required,mark"`
}

// Toggle godoc
// POST /api/v1/attendance/:index/toggle
// Cycles the entry Unmarked → Present → Absent → Unmarked.
func (h *AttendanceHandler) Toggle(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	entry, summary, err := h.attendanceService.Toggle(index)
	if err != nil {
		failMarking(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry, "summary": summary})
}

// SetMark godoc
// PUT /api/v1/attendance/:index
// Sets the entry to present or absent regardless of its current mark.
func (h *AttendanceHandler) SetMark(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req SetMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	mark, _ := model.ParseMark(req.Mark)

	entry, summary, err := h.attendanceService.SetMark(index, mark)
	if err != nil {
		failMarking(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry, "summary": summary})
}

// Bulk godoc
// POST /api/v1/attendance/bulk
// Marks everyone present, absent, or clears every mark.
func (h *AttendanceHandler) Bulk(c *gin.Context) {
	var req BulkMarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	mark, _ := model.ParseMark(req.Mark)

	summary, err := h.attendanceService.SetAll(mark)
	if err != nil {
		failMarking(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"summary": summary})
}

// Summary godoc
// GET /api/v1/attendance/summary
// Returns total, present, absent and unmarked counts.
func (h *AttendanceHandler) Summary(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"summary": h.attendanceService.Summary()})
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidIndex)
		return 0, false
	}
	return index, true
}

func failMarking(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrIndexOutOfRange):
		response.Fail(c, http.StatusNotFound, response.ErrEntryNotFound)
	case errors.Is(err, service.ErrInvalidMark):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
