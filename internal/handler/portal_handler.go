package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxuni/miniapp-backend/internal/middleware"
	"github.com/maxuni/miniapp-backend/internal/model"
	"github.com/maxuni/miniapp-backend/internal/response"
	"github.com/maxuni/miniapp-backend/internal/service"
	"github.com/maxuni/miniapp-backend/internal/validator"
	"github.com/rs/zerolog"
)

// Refresher starts a background preload pass.
type Refresher interface {
	Trigger(userID int64, force bool) bool
	InProgress(userID int64) bool
}

// PortalHandler serves the student pages backed by the per-resource caches.
type PortalHandler struct {
	portalService  *service.PortalService
	sessionService *service.SessionService
	refresher      Refresher
	log            zerolog.Logger
}

// NewPortalHandler creates a new PortalHandler.
func NewPortalHandler(
	portalService *service.PortalService,
	sessionService *service.SessionService,
	refresher Refresher,
	log zerolog.Logger,
) *PortalHandler {
	return &PortalHandler{
		portalService:  portalService,
		sessionService: sessionService,
		refresher:      refresher,
		log:            log.With().Str("component", "portal_handler").Logger(),
	}
}

type scheduleQuery struct {
	Range string `form:"range" binding:"omitempty,max=11"`
}

type newsQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=50"`
}

// GetProfile godoc
// GET /api/v1/portal/profile
func (h *PortalHandler) GetProfile(c *gin.Context) {
	h.page(c, h.portalService.Profile)
}

// GetServices godoc
// GET /api/v1/portal/services
// Returns the service catalogue and web platforms as one page.
func (h *PortalHandler) GetServices(c *gin.Context) {
	h.page(c, h.portalService.Services)
}

// GetTeachers godoc
// GET /api/v1/portal/teachers
func (h *PortalHandler) GetTeachers(c *gin.Context) {
	h.page(c, h.portalService.Teachers)
}

// GetTeacher godoc
// GET /api/v1/portal/teachers/:id
func (h *PortalHandler) GetTeacher(c *gin.Context) {
	teacherID := c.Param("id")
	if teacherID == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	h.page(c, func(ctx context.Context, userID int64) (model.PageData, error) {
		return h.portalService.TeacherDetail(ctx, userID, teacherID)
	})
}

// GetContacts godoc
// GET /api/v1/portal/contacts
func (h *PortalHandler) GetContacts(c *gin.Context) {
	h.page(c, h.portalService.Contacts)
}

// GetMaps godoc
// GET /api/v1/portal/maps
func (h *PortalHandler) GetMaps(c *gin.Context) {
	h.page(c, h.portalService.Maps)
}

// GetSchedule godoc
// GET /api/v1/portal/schedule?range=DD.MM-DD.MM
// Without a range the default three-day window is served from the cache.
func (h *PortalHandler) GetSchedule(c *gin.Context) {
	var q scheduleQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	h.page(c, func(ctx context.Context, userID int64) (model.PageData, error) {
		return h.portalService.Schedule(ctx, userID, q.Range)
	})
}

// GetGradebook godoc
// GET /api/v1/portal/gradebook
func (h *PortalHandler) GetGradebook(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"semesters": h.portalService.Gradebook()})
}

// ListNews godoc
// GET /api/v1/portal/news?page=1&per_page=10
func (h *PortalHandler) ListNews(c *gin.Context) {
	q := newsQuery{Page: 1, PerPage: 10}
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	items, total := h.portalService.News(q.Page, q.PerPage)
	response.SuccessWithPagination(c, http.StatusOK, items, &response.Pagination{
		Page:       q.Page,
		PerPage:    q.PerPage,
		TotalItems: total,
		TotalPages: (total + q.PerPage - 1) / q.PerPage,
	})
}

// GetNews godoc
// GET /api/v1/portal/news/:id
func (h *PortalHandler) GetNews(c *gin.Context) {
	item, ok := h.portalService.NewsItem(c.Param("id"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// Refresh godoc
// POST /api/v1/portal/refresh
// Starts a forced preload pass. Completion is pushed over the stream.
func (h *PortalHandler) Refresh(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	started := h.refresher.Trigger(claims.UserID, true)
	response.Success(c, http.StatusAccepted, gin.H{
		"started":     started,
		"in_progress": h.refresher.InProgress(claims.UserID),
	})
}

// GetUniversities godoc
// GET /api/v1/public/universities
func (h *PortalHandler) GetUniversities(c *gin.Context) {
	list, err := h.portalService.Universities(c.Request.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to load universities")
		failUpstream(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"universities": list})
}

// page runs a cached page read for the caller. Upstream failures are carried
// inside the page; a lost link ends the session.
func (h *PortalHandler) page(c *gin.Context, read func(context.Context, int64) (model.PageData, error)) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}
	ctx := c.Request.Context()

	pd, err := read(ctx, claims.UserID)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, pd)
	case errors.Is(err, service.ErrNotLinked):
		h.notLinked(c, claims.UserID)
	case errors.Is(err, service.ErrInvalidRange):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRange)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// notLinked confirms the lost link with the status endpoint before tearing
// the session down. A status call that fails keeps the session.
func (h *PortalHandler) notLinked(c *gin.Context, userID int64) {
	_, err := h.sessionService.VerifyStatus(c.Request.Context(), userID)
	switch {
	case errors.Is(err, service.ErrSessionInvalidated):
		response.Fail(c, http.StatusUnauthorized, response.ErrNotLinked)
	case err != nil:
		failUpstream(c, err)
	default:
		// Still linked: the page call was refused for another reason.
		response.Fail(c, http.StatusBadGateway, response.ErrUpstream)
	}
}
