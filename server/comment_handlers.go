package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createCommentRequest struct {
	PostId  uint   `json:"postId" binding:"required"`
	Content string `json:"content"`
}

func (h *Handlers) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	comment, err := h.Resolver.CreateComment(c.Request.Context(), viewerId(c), req.PostId, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, comment)
}

func (h *Handlers) ListComments(c *gin.Context) {
	postId, ok := idParam(c, "postId")
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.Resolver.ListCommentsForPost(c.Request.Context(), postId, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) UpdateComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	comment, err := h.Resolver.UpdateComment(c.Request.Context(), id, viewerId(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, comment)
}

func (h *Handlers) DeleteComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Resolver.DeleteComment(c.Request.Context(), id, viewerId(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "comment deleted")
}
