// Reaction HTTP handlers.
//
// This file exposes the REST endpoints for reacting to announcements:
//   - POST   /announcements/{id}/reactions (upsert, Idempotency-Key honored)
//   - DELETE /announcements/{id}/reactions (remove)
//
// The server has no notion of a "toggle": the client translates toggle
// intent into the correct upsert-vs-remove call. A user holds at most one
// reaction per announcement; posting again simply overwrites its type.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openresidents/go-noticeboard-backend/internal/http/middleware"
	"github.com/openresidents/go-noticeboard-backend/internal/services"
)

// CreateReactionRequest is the JSON payload for upserting a reaction.
type CreateReactionRequest struct {
	// Type is the reaction kind: up, down, or heart.
	Type string `json:"type" binding:"required,oneof=up down heart"`
}

// CreateReaction handles POST /announcements/:id/reactions.
//
// The caller may supply an Idempotency-Key header; a replay within the TTL
// window is answered with the originally produced reaction, byte for byte,
// without re-executing the upsert (the service-level gate owns this).
func (h *Handlers) CreateReaction(c *gin.Context) {
	var req CreateReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type must be up, down, or heart")
		return
	}

	idemKey, _ := middleware.GetIdempotencyKey(c)

	r, err := h.reactSvc.React(c.Request.Context(), c.Param("id"), userID(c), req.Type, idemKey)
	if err != nil {
		switch err {
		case services.ErrAnnouncementNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "announcement not found")
		case services.ErrInvalidReactionType:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type must be up, down, or heart")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, r)
}

// DeleteReaction handles DELETE /announcements/:id/reactions. It returns
// 204 on success and 404 when the caller holds no reaction on the
// announcement.
func (h *Handlers) DeleteReaction(c *gin.Context) {
	if err := h.reactSvc.Remove(c.Request.Context(), c.Param("id"), userID(c)); err != nil {
		switch err {
		case services.ErrReactionNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "reaction not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}
