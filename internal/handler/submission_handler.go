package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/repository"
	"github.com/innoviii/entrance-backend/internal/response"
	"github.com/innoviii/entrance-backend/internal/service"
	"github.com/innoviii/entrance-backend/internal/validator"
)

// SubmissionHandler handles administrative submission review endpoints.
type SubmissionHandler struct {
	submissionService *service.SubmissionService
	exportService     *service.ExportService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *service.SubmissionService, exportService *service.ExportService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		exportService:     exportService,
	}
}

// ListSubmissions godoc
// GET /api/v1/admin/submissions?test_id=&status=&name=&email=
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	var filter repository.SubmissionFilter

	if raw := c.Query("test_id"); raw != "" {
		testID, err := uuid.Parse(raw)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		filter.TestID = &testID
	}
	if raw := c.Query("status"); raw != "" {
		status := model.SubmissionStatus(raw)
		switch status {
		case model.StatusPending, model.StatusPartiallyGraded, model.StatusGraded:
			filter.Status = &status
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
			return
		}
	}
	filter.Name = c.Query("name")
	filter.Email = c.Query("email")

	submissions, err := h.submissionService.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}

// GetSubmission godoc
// GET /api/v1/admin/submissions/:submission_id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("submission_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	submission, err := h.submissionService.Get(c.Request.Context(), submissionID)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// GradeSubmission godoc
// POST /api/v1/admin/submissions/:submission_id/grade
// Applies a manual score on top of the auto score and finalizes the submission.
func (h *SubmissionHandler) GradeSubmission(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("submission_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.GradeSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submission, err := h.submissionService.Grade(c.Request.Context(), submissionID, *req.ManualScore)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidManualScore):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidScore)
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrIllegalTransition):
			response.Fail(c, http.StatusConflict, response.ErrInvalidPayload)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"submission": submission})
}

// ExportCSV godoc
// GET /api/v1/admin/export?test_id=
// Streams every submission of a test as a CSV attachment.
func (h *SubmissionHandler) ExportCSV(c *gin.Context) {
	raw := c.Query("test_id")
	if raw == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrTestIDRequired)
		return
	}
	testID, err := uuid.Parse(raw)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=submissions-%s.csv", testID))

	if err := h.exportService.WriteCSV(c.Request.Context(), testID, c.Writer); err != nil {
		// Headers may already be out; only send an error body when nothing
		// has been written yet.
		if c.Writer.Written() {
			return
		}
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			c.Header("Content-Type", "application/json; charset=utf-8")
			c.Header("Content-Disposition", "")
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNoSubmissions):
			c.Header("Content-Type", "application/json; charset=utf-8")
			c.Header("Content-Disposition", "")
			response.Fail(c, http.StatusNotFound, response.ErrNoSubmissions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
	}
}
