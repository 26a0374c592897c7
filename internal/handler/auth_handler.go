package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/innoviii/entrance-backend/internal/middleware"
	"github.com/innoviii/entrance-backend/internal/model"
	"github.com/innoviii/entrance-backend/internal/response"
	"github.com/innoviii/entrance-backend/internal/service"
	"github.com/innoviii/entrance-backend/internal/validator"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService  *service.AuthService
	adminService *service.AdminService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, adminService *service.AdminService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		adminService: adminService,
	}
}

// Login godoc
// POST /api/v1/auth/admin/login
// Verifies credentials, issues a JWT, and registers the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.adminService.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		// Same answer for unknown email and bad password.
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	if err := h.authService.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
		return
	}

	token, err := h.authService.GenerateToken(admin.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if err := h.authService.RegisterSession(c.Request.Context(), admin.ID, claims.ID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "name": admin.Name, "email": admin.Email},
	})
}

// Logout godoc
// POST /api/v1/auth/admin/logout
// Clears the session registry entry, invalidating outstanding tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.authService.ClearSession(c.Request.Context(), claims.AdminID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"logged_out": true})
}

// GetProfile godoc
// GET /api/v1/auth/admin/me
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	admin, err := h.adminService.GetByID(c.Request.Context(), claims.AdminID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"admin": admin})
}
