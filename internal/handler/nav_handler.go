package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxuni/miniapp-backend/internal/middleware"
	"github.com/maxuni/miniapp-backend/internal/navigation"
	"github.com/maxuni/miniapp-backend/internal/response"
	"github.com/maxuni/miniapp-backend/internal/search"
	"github.com/maxuni/miniapp-backend/internal/service"
	"github.com/maxuni/miniapp-backend/internal/validator"
)

// NavHandler exposes the per-user page history and the section search.
type NavHandler struct {
	navService *service.NavigationService
	index      *search.Index
}

// NewNavHandler creates a new NavHandler.
func NewNavHandler(navService *service.NavigationService, index *search.Index) *NavHandler {
	return &NavHandler{navService: navService, index: index}
}

type pageRequest struct {
	Page navigation.Page `json:"page" binding:"required,max=32"`
}

type searchTargetRequest struct {
	ID string `json:"id" binding:"required,max=64"`
}

type searchQuery struct {
	Q string `form:"q" binding:"max=100"`
}

// GetNav godoc
// GET /api/v1/nav
func (h *NavHandler) GetNav(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	state, err := h.navService.Current(c.Request.Context(), claims.UserID)
	h.respond(c, state, err)
}

// Push godoc
// POST /api/v1/nav/push
func (h *NavHandler) Push(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req pageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.navService.Push(c.Request.Context(), claims.UserID, req.Page)
	h.respond(c, state, err)
}

// Back godoc
// POST /api/v1/nav/back
// Pops one page; the root page is never popped.
func (h *NavHandler) Back(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	state, err := h.navService.Back(c.Request.Context(), claims.UserID)
	h.respond(c, state, err)
}

// Root godoc
// POST /api/v1/nav/root
// Replaces the whole history with one page, as the footer tabs do.
func (h *NavHandler) Root(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req pageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.navService.Root(c.Request.Context(), claims.UserID, req.Page)
	h.respond(c, state, err)
}

// OpenSearchResult godoc
// POST /api/v1/nav/search-target
func (h *NavHandler) OpenSearchResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req searchTargetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	state, err := h.navService.OpenSearchResult(c.Request.Context(), claims.UserID, req.ID)
	h.respond(c, state, err)
}

// Search godoc
// GET /api/v1/search?q=
func (h *NavHandler) Search(c *gin.Context) {
	var q searchQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": h.index.Search(q.Q)})
}

func (h *NavHandler) respond(c *gin.Context, state service.NavigationState, err error) {
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, state)
	case errors.Is(err, navigation.ErrUnknownPage):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPage)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
