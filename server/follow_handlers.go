package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type followRequest struct {
	UserIdToFollow uint `json:"userIdToFollow" binding:"required"`
}

func (h *Handlers) Follow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	follow, err := h.Resolver.Follow(c.Request.Context(), viewerId(c), req.UserIdToFollow)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, follow)
}

func (h *Handlers) Unfollow(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Resolver.Unfollow(c.Request.Context(), viewerId(c), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "unfollowed")
}

func (h *Handlers) ListFollowers(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	followers, err := h.Resolver.ListFollowers(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, followers)
}

func (h *Handlers) ListFollowing(c *gin.Context) {
	following, err := h.Resolver.ListFollowing(c.Request.Context(), viewerId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, following)
}
