package server

import (
	"net/http"

	"github.com/Luismorlan/socialmux/server/resolver"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) Register(c *gin.Context) {
	var input resolver.NewUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	session, err := h.Resolver.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, session)
}

func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	session, err := h.Resolver.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, session)
}

func (h *Handlers) Logout(c *gin.Context) {
	if err := h.Resolver.Logout(c.Request.Context(), identity(c)); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "logged out")
}

func (h *Handlers) Me(c *gin.Context) {
	user, err := h.Resolver.Me(c.Request.Context(), viewerId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}
