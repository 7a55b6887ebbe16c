package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/Luismorlan/socialmux/server/auth"
	. "github.com/Luismorlan/socialmux/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// identityKey is where Auth stores the verified auth.Identity in the gin
	// context.
	identityKey = "identity"

	errorCodeUnauthenticated = "unauthenticated"
	errorCodeInternal        = "internal_error"
)

// Auth middleware fetches the bearer token from the "Authorization" header,
// falling back to the "token" query parameter. It verifies the token and
// stores the caller's identity in the context. It aborts with 401 when the
// token is missing, invalid, expired or revoked, and with 500 when the token
// store can't be reached.
func Auth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthenticated(c, "missing bearer token")
			return
		}

		identity, err := issuer.Verify(c.Request.Context(), token)
		if errors.Is(err, auth.ErrInvalidToken) {
			abortUnauthenticated(c, err.Error())
			return
		}
		if err != nil {
			Log.WithError(err).Error("fail to verify token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code": errorCodeInternal,
				"msg":  "internal server error",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return c.Query("token")
}

func abortUnauthenticated(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code": errorCodeUnauthenticated,
		"msg":  msg,
	})
}

// GetIdentity returns the identity stored by Auth.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

// Logger replaces gin's default request logger with the service's logrus
// logger.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := Log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if identity, ok := GetIdentity(c); ok {
			entry = entry.WithField("user_id", identity.UserId)
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request failed")
		case len(c.Errors) > 0:
			entry.Warn(c.Errors.String())
		default:
			entry.Debug("request served")
		}
	}
}
