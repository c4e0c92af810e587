// Comment HTTP handlers.
//
// This file exposes REST endpoints for an announcement's comment feed:
//   - GET  /announcements/{id}/comments  (cursor-paginated page)
//   - POST /announcements/{id}/comments  (append)
//
// The page shape is a bare JSON array, matching what the web client
// consumes: it detects the end of the feed by receiving fewer items than it
// asked for, and uses the last item's id as the next cursor.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openresidents/go-noticeboard-backend/internal/services"
	"github.com/openresidents/go-noticeboard-backend/internal/utils"
)

// CreateCommentRequest is the JSON payload for appending a comment.
type CreateCommentRequest struct {
	// AuthorName is the display name of the poster.
	AuthorName string `json:"authorName" binding:"required,min=1,max=128"`
	// Text is the comment body (1–500 characters).
	Text string `json:"text" binding:"required,min=1,max=500"`
}

// ListComments handles GET /announcements/:id/comments.
//
// Query parameters:
//   - cursor: id of a previously returned comment; the page starts right
//     after it. An unmatched cursor yields an empty page, not an error.
//   - limit: page size, clamped to [1,50]; defaults to the configured
//     service default when absent or unparseable.
func (h *Handlers) ListComments(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), 0) // 0 → service default
	cursor := c.Query("cursor")

	page, err := h.commentSvc.ListPage(c.Request.Context(), c.Param("id"), cursor, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, page)
}

// CreateComment handles POST /announcements/:id/comments and returns the
// created comment with status 201, or 404 when the announcement is unknown.
func (h *Handlers) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "authorName and text (1–500 chars) required")
		return
	}

	cm, err := h.commentSvc.Append(c.Request.Context(), c.Param("id"), req.AuthorName, req.Text)
	if err != nil {
		switch err {
		case services.ErrAnnouncementNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "announcement not found")
		case services.ErrInvalidComment:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "authorName and text (1–500 chars) required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, cm)
}
