package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type postRequest struct {
	Content string `json:"content"`
}

func (h *Handlers) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	post, err := h.Resolver.CreatePost(c.Request.Context(), viewerId(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, post)
}

// Feed serves the viewer's timeline: their own posts and those of the users
// they follow.
func (h *Handlers) Feed(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.Resolver.Feed(c.Request.Context(), viewerId(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) ListAllPosts(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.Resolver.ListAllPosts(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) GetPost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	post, err := h.Resolver.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, post)
}

func (h *Handlers) UpdatePost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	post, err := h.Resolver.UpdatePost(c.Request.Context(), id, viewerId(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, post)
}

func (h *Handlers) DeletePost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Resolver.DeletePost(c.Request.Context(), id, viewerId(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "post deleted")
}
