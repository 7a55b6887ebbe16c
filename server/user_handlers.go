package server

import (
	"net/http"

	"github.com/Luismorlan/socialmux/server/resolver"
	"github.com/gin-gonic/gin"
)

const profilePictureField = "profilePicture"

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *Handlers) ListUsers(c *gin.Context) {
	users, err := h.Resolver.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, users)
}

func (h *Handlers) GetProfile(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.Resolver.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

func (h *Handlers) ListUserPosts(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.Resolver.ListUserPosts(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handlers) UpdateUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var input resolver.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	user, err := h.Resolver.UpdateUser(c.Request.Context(), id, viewerId(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

func (h *Handlers) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Resolver.DeleteUser(c.Request.Context(), id, viewerId(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "user deleted")
}

func (h *Handlers) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	token, err := h.Resolver.UpdatePassword(c.Request.Context(), viewerId(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"token": token})
}

func (h *Handlers) UpdateProfilePicture(c *gin.Context) {
	header, err := c.FormFile(profilePictureField)
	if err != nil {
		badRequest(c, "missing multipart file "+profilePictureField)
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer file.Close()

	user, err := h.Resolver.UpdateProfilePicture(c.Request.Context(), viewerId(c), header.Filename, header.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}
