package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxuni/miniapp-backend/internal/middleware"
	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/response"
	"github.com/maxuni/miniapp-backend/internal/service"
	"github.com/maxuni/miniapp-backend/internal/validator"
)

// PreferenceHandler handles the theme and notification settings pages.
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler.
func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// GetPreferences godoc
// GET /api/v1/preferences
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	prefs, err := h.preferenceService.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, prefs)
}

// UpdatePreferences godoc
// PUT /api/v1/preferences
// Only the fields present are changed; unknown notification ids are ignored.
func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.UpdatePreferencesRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	prefs, err := h.preferenceService.Update(c.Request.Context(), claims.UserID, req)
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, prefs)
}
