package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/response"
	"github.com/innoviii/entrance-backend/internal/service"
	"github.com/innoviii/entrance-backend/internal/validator"
)

// CandidateHandler handles the public candidate-facing endpoints. Every
// payload that leaves this handler has its answer keys stripped.
type CandidateHandler struct {
	testService       *service.TestService
	submissionService *service.SubmissionService
}

// NewCandidateHandler creates a new CandidateHandler.
func NewCandidateHandler(testService *service.TestService, submissionService *service.SubmissionService) *CandidateHandler {
	return &CandidateHandler{
		testService:       testService,
		submissionService: submissionService,
	}
}

// ListTests godoc
// GET /api/v1/tests?role=member|mentor
// Lists published tests for a role, keys stripped. Defaults to member.
func (h *CandidateHandler) ListTests(c *gin.Context) {
	role := model.Role(c.DefaultQuery("role", string(model.RoleMember)))
	if role != model.RoleMember && role != model.RoleMentor {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	tests, err := h.testService.ListForCandidates(c.Request.Context(), role)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// GetTest godoc
// GET /api/v1/tests/:test_id
// Returns the redacted test detail for candidates.
func (h *CandidateHandler) GetTest(c *gin.Context) {
	testID, err := uuid.Parse(c.Param("test_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	test, err := h.testService.GetForCandidate(c.Request.Context(), testID)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"test": test})
}

// SubmitTest godoc
// POST /api/v1/tests/:test_id/submit
// Auto-grades the answer set and persists the submission.
func (h *CandidateHandler) SubmitTest(c *gin.Context) {
	testID, err := uuid.Parse(c.Param("test_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	sub, err := h.submissionService.Submit(c.Request.Context(), testID, &req)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// The candidate only learns their auto score; keys and per-question
	// breakdowns stay server-side.
	response.Success(c, http.StatusCreated, gin.H{
		"submission_id": sub.ID,
		"auto_score":    sub.AutoScore,
	})
}
