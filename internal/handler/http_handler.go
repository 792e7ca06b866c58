package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
	"github.com/VJNAVEEN2005/aic-query-service/internal/service"
	"github.com/VJNAVEEN2005/aic-query-service/pkg/log"
	"github.com/VJNAVEEN2005/aic-query-service/pkg/response"
)

const tokenHeader = "token"

// Handler handles HTTP requests for the query service.
type Handler struct {
	querySvc service.QueryService
}

// NewHandler creates a new HTTP handler.
func NewHandler(querySvc service.QueryService) *Handler {
	return &Handler{
		querySvc: querySvc,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/sessions", h.CreateSession)
		api.GET("/sessions/:id", h.GetSnapshot)
		api.DELETE("/sessions/:id", h.CloseSession)
		api.PUT("/sessions/:id/domain", h.SetDomain)
		api.POST("/sessions/:id/search", h.SubmitSearch)
		api.DELETE("/sessions/:id/search", h.ClearSearch)
		api.PUT("/sessions/:id/page", h.ChangePage)
		api.GET("/sessions/:id/suggestions", h.Suggest)
		api.POST("/sessions/:id/suggestions/cursor", h.Cursor)
		api.DELETE("/sessions/:id/records/:recordId", h.DeleteRecord)
	}
}

type createSessionRequest struct {
	Screen string `json:"screen" binding:"required"`
}

type domainRequest struct {
	Domain string `json:"domain" binding:"required"`
}

type searchRequest struct {
	Term string `json:"term"`
}

type pageRequest struct {
	Page int `json:"page" binding:"required"`
}

type cursorRequest struct {
	Move string `json:"move" binding:"required"`
	Term string `json:"term"`
}

// CreateSession mounts a screen: creates a session and performs the
// initial domain-scoped fetch.
func (h *Handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create session request")
		response.BadRequest(c, err.Error())
		return
	}

	snap, err := h.querySvc.CreateSession(ctx, req.Screen)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Set(log.FieldSessionID, snap.SessionID)
	c.Set(log.FieldScreen, req.Screen)
	response.Created(c, snap)
}

// GetSnapshot returns the current visible state of a session.
func (h *Handler) GetSnapshot(c *gin.Context) {
	snap, err := h.querySvc.Snapshot(c.Request.Context(), h.sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, snap)
}

// SetDomain switches the category tab.
func (h *Handler) SetDomain(c *gin.Context) {
	ctx := c.Request.Context()

	var req domainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	snap, err := h.querySvc.SetDomain(ctx, h.sessionID(c), req.Domain)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, snap)
}

// SubmitSearch submits the current term against the global-search endpoint.
func (h *Handler) SubmitSearch(c *gin.Context) {
	ctx := c.Request.Context()

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	snap, err := h.querySvc.SubmitSearch(ctx, h.sessionID(c), req.Term)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, snap)
}

// ClearSearch exits search mode and restores the domain listing.
func (h *Handler) ClearSearch(c *gin.Context) {
	snap, err := h.querySvc.ClearSearch(c.Request.Context(), h.sessionID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, snap)
}

// ChangePage moves to another page of the current result set.
func (h *Handler) ChangePage(c *gin.Context) {
	ctx := c.Request.Context()

	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	snap, err := h.querySvc.ChangePage(ctx, h.sessionID(c), req.Page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, snap)
}

// Suggest recomputes the suggestion panel for the given term.
func (h *Handler) Suggest(c *gin.Context) {
	panel, err := h.querySvc.Suggest(c.Request.Context(), h.sessionID(c), c.Query("term"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, panel)
}

// Cursor applies a keyboard action (down/up/select/escape) to the panel.
func (h *Handler) Cursor(c *gin.Context) {
	ctx := c.Request.Context()

	var req cursorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.querySvc.Cursor(ctx, h.sessionID(c), req.Move, req.Term)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteRecord deletes one upstream record, forwarding the caller's opaque
// auth token, then refreshes the current page.
func (h *Handler) DeleteRecord(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.GetHeader(tokenHeader)
	if token == "" {
		response.Unauthorized(c, "missing token header")
		return
	}

	snap, err := h.querySvc.DeleteRecord(ctx, h.sessionID(c), c.Param("recordId"), token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, snap)
}

// CloseSession unmounts a screen.
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.querySvc.CloseSession(c.Request.Context(), h.sessionID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, gin.H{"closed": true})
}

func (h *Handler) sessionID(c *gin.Context) string {
	id := c.Param("id")
	c.Set(log.FieldSessionID, id)
	return id
}

func (h *Handler) respondError(c *gin.Context, err error) {
	l := log.Ctx(c.Request.Context())

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		response.NotFound(c, "session not found")
	case errors.Is(err, domain.ErrUnknownScreen),
		errors.Is(err, domain.ErrUnknownDomain),
		errors.Is(err, service.ErrInvalidCursorMove):
		response.BadRequest(c, err.Error())
	default:
		if fe, ok := domain.AsFetchError(err); ok {
			l.Error().Err(err).Msg("upstream request failed")
			if fe.Kind == domain.FetchTimeout {
				response.GatewayTimeout(c, fe.Message)
			} else {
				response.BadGateway(c, fe.Message)
			}
			return
		}
		l.Error().Err(err).Msg("request failed")
		response.InternalError(c, "internal error")
	}
}
