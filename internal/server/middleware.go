package server

import (
	"net/http"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/session"
	"auction-house/services/auction/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// SessionMiddleware resolves the session cookie to server-side session state
// and attaches it to the request context. Anonymous requests pass through.
func SessionMiddleware(store *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookieName); err == nil {
			if sess, err := store.Get(token); err == nil {
				c.Set(helpers.CtxSession, sess)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects requests that carry no authenticated session
func RequireAuth(c *gin.Context) {
	if _, ok := helpers.CurrentSession(c); !ok {
		utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrAuthRequired, "authentication required")
		c.Abort()
		return
	}
	c.Next()
}
