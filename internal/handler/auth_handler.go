package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxuni/miniapp-backend/internal/middleware"
	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/response"
	"github.com/maxuni/miniapp-backend/internal/service"
	"github.com/maxuni/miniapp-backend/internal/upstream"
	"github.com/maxuni/miniapp-backend/internal/validator"
)

// AuthHandler handles linking, unlinking and session checks.
type AuthHandler struct {
	sessionService *service.SessionService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService}
}

// StudentLogin godoc
// POST /api/v1/auth/login
// Links the MAX user to a university account, returns a JWT and starts background updates.
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req model.StudentLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	resp, err := h.sessionService.Login(c.Request.Context(), req)
	if err != nil {
		var apiErr *upstream.APIError
		switch {
		case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
			response.FailWithMessage(c, http.StatusUnauthorized, response.ErrInvalidCredentials, apiErr.Message)
		case errors.As(err, &apiErr):
			response.FailWithMessage(c, http.StatusBadGateway, response.ErrUpstream, apiErr.Message)
		default:
			_ = c.Error(err)
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// StudentLogout godoc
// POST /api/v1/auth/logout
// Unlinks the account and clears every cache, session and navigation entry of the user.
func (h *AuthHandler) StudentLogout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), claims.UserID); err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// GetSession godoc
// GET /api/v1/auth/session
// Returns the stored session after confirming with the university that the account is still linked.
func (h *AuthHandler) GetSession(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	ctx := c.Request.Context()

	session, err := h.sessionService.Session(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			response.Fail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	status, err := h.sessionService.VerifyStatus(ctx, claims.UserID)
	switch {
	case errors.Is(err, service.ErrSessionInvalidated):
		response.Fail(c, http.StatusUnauthorized, response.ErrNotLinked)
		return
	case err != nil:
		// The university being unreachable does not end the session.
		response.Success(c, http.StatusOK, gin.H{
			"session":  session,
			"verified": false,
			"error":    upstream.Message(err),
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"session":  session,
		"status":   status,
		"verified": true,
	})
}
