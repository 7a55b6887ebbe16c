package server

import (
	"net/http"

	"github.com/Luismorlan/socialmux/server/resolver"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/gin-gonic/gin"
)

const errorCodeInternal = "internal_error"

var statusOfKind = map[resolver.Kind]int{
	resolver.KindNotFound:         http.StatusNotFound,
	resolver.KindForbidden:        http.StatusForbidden,
	resolver.KindValidation:       http.StatusBadRequest,
	resolver.KindConflict:         http.StatusConflict,
	resolver.KindInvalidOperation: http.StatusUnprocessableEntity,
	resolver.KindUnauthenticated:  http.StatusUnauthorized,
}

// respondError writes err as {"code", "msg"}. Errors without a kind are
// logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	kind, ok := resolver.KindOf(err)
	status, known := statusOfKind[kind]
	if !ok || !known {
		Log.WithError(err).WithField("path", c.FullPath()).Error("unexpected error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code": errorCodeInternal,
			"msg":  "internal server error",
		})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{
		"code": string(kind),
		"msg":  err.Error(),
	})
}

// badRequest answers 400 for requests that can't be decoded.
func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"code": string(resolver.KindValidation),
		"msg":  msg,
	})
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}

func respondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"msg": msg})
}
