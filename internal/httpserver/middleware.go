package httpserver

import (
	"net/http"

	"catalog-storefront/internal/session"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "cart_session"
	scanCookie    = "scan_auth"

	sessionCtxKey = "sessionID"

	sessionCookieMaxAge = 30 * 24 * 3600
)

// sessionMiddleware resolves the cart session from its cookie, issuing a new
// id when the cookie is missing or malformed.
func sessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || !session.ValidID(id) {
			id = session.NewID()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, sessionCookieMaxAge, "/", "", secure, true)
		c.Set(sessionCtxKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}

// scanAuthMiddleware rejects requests without a valid scan_auth cookie.
func scanAuthMiddleware(auth scanAuth) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(scanCookie)
		if err := auth.Validate(token); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
