// Announcement HTTP handlers.
//
// This file exposes REST endpoints for announcement resources:
//   - POST  /announcements             (create)
//   - GET   /announcements             (aggregated listing, ETag support)
//   - PATCH /announcements/{id}/status (open/close)
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses (including conditional
// responses for polling clients).
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/openresidents/go-noticeboard-backend/internal/domain"
	"github.com/openresidents/go-noticeboard-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AnnouncementService defines announcement lifecycle operations consumed by
// HTTP handlers. Implementations should be safe for concurrent use and must
// honor the provided context.
type AnnouncementService interface {
	// Create posts a new announcement with the given title and optional description.
	Create(ctx context.Context, title, description string) (*domain.Announcement, error)
	// List returns the aggregated listing (newest first) and its fingerprint.
	List(ctx context.Context) ([]domain.AnnouncementWithCounts, string, error)
	// UpdateStatus transitions an announcement between active and closed.
	UpdateStatus(ctx context.Context, id, status string) (*domain.Announcement, error)
}

// CommentService defines comment append and paginated read operations.
type CommentService interface {
	// Append adds a comment to an announcement's feed.
	Append(ctx context.Context, announcementID, authorName, text string) (*domain.Comment, error)
	// ListPage returns one cursor-delimited page of an announcement's feed.
	ListPage(ctx context.Context, announcementID, cursor string, limit int) ([]domain.Comment, error)
}

// ReactionService defines reaction upsert and removal operations.
type ReactionService interface {
	// React upserts userID's reaction, honoring an optional idempotency key.
	React(ctx context.Context, announcementID, userID, typ, idemKey string) (*domain.Reaction, error)
	// Remove deletes userID's reaction from an announcement.
	Remove(ctx context.Context, announcementID, userID string) error
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for announcements, comments, and reactions.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	annSvc     AnnouncementService
	commentSvc CommentService
	reactSvc   ReactionService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(annSvc AnnouncementService, commentSvc CommentService, reactSvc ReactionService) *Handlers {
	return &Handlers{annSvc: annSvc, commentSvc: commentSvc, reactSvc: reactSvc}
}

// userID extracts the caller's opaque user id from the Gin context (set by
// upstream middleware). If absent, it falls back to the "X-User-ID" header
// (the web client sends it), and finally to "demo-user". It never touches
// c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

//
// DTOs
//

// CreateAnnouncementRequest is the JSON payload for posting an announcement.
type CreateAnnouncementRequest struct {
	// Title is the non-empty headline of the notice.
	Title string `json:"title" binding:"required,min=1,max=255"`
	// Description optionally adds a free-form body.
	Description string `json:"description"`
}

// UpdateStatusRequest is the JSON payload for transitioning an announcement.
type UpdateStatusRequest struct {
	// Status must be "active" or "closed".
	Status string `json:"status" binding:"required,oneof=active closed"`
}

//
// Handlers
//

// CreateAnnouncement handles POST /announcements. It returns the created
// announcement with status 201.
func (h *Handlers) CreateAnnouncement(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title required (1–255 chars)")
		return
	}

	a, err := h.annSvc.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		if err == services.ErrEmptyTitle {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title required (1–255 chars)")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, a)
}

// ListAnnouncements handles GET /announcements. The response carries an ETag
// computed over the aggregated listing; when the client presents the same
// value in If-None-Match, a bodyless 304 is returned instead. Comparison is
// exact string equality.
func (h *Handlers) ListAnnouncements(c *gin.Context) {
	items, etag, err := h.annSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}
	ok(c, http.StatusOK, items)
}

// UpdateAnnouncementStatus handles PATCH /announcements/:id/status and
// returns the updated announcement, or 404 when the id is unknown.
func (h *Handlers) UpdateAnnouncementStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be active or closed")
		return
	}

	a, err := h.annSvc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		switch err {
		case services.ErrAnnouncementNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "announcement not found")
		case services.ErrInvalidStatus:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status must be active or closed")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, a)
}
