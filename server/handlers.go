package server

import (
	"fmt"
	"strconv"

	"github.com/Luismorlan/socialmux/model"
	"github.com/Luismorlan/socialmux/server/auth"
	"github.com/Luismorlan/socialmux/server/middlewares"
	"github.com/Luismorlan/socialmux/server/resolver"
	"github.com/Luismorlan/socialmux/utils"
	"github.com/gin-gonic/gin"
)

// Handlers adapts HTTP requests to resolver operations. Every handler behind
// middlewares.Auth gets the viewer from the request context and passes it
// explicitly to the resolver.
type Handlers struct {
	Resolver *resolver.Resolver
}

func NewHandlers(r *resolver.Resolver) *Handlers {
	return &Handlers{Resolver: r}
}

// identity must only be called from routes guarded by middlewares.Auth.
func identity(c *gin.Context) auth.Identity {
	id, ok := middlewares.GetIdentity(c)
	if !ok {
		panic("identity requested on a route without auth middleware")
	}
	return id
}

func viewerId(c *gin.Context) uint {
	return identity(c).UserId
}

// idParam parses the uint path parameter name, answering 400 when it isn't
// one.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParseUintId(c.Param(name))
	if !ok {
		badRequest(c, fmt.Sprintf("invalid %s %q", name, c.Param(name)))
		return 0, false
	}
	return id, true
}

// pageRequest reads the optional "page" and "limit" query parameters. Bounds
// are enforced by the resolver; only non integers are rejected here.
func pageRequest(c *gin.Context) (model.PageRequest, bool) {
	var req model.PageRequest
	for name, dst := range map[string]*int{"page": &req.Page, "limit": &req.Limit} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, fmt.Sprintf("%s should be an integer", name))
			return req, false
		}
		*dst = v
	}
	return req, true
}
