package httpserver

import (
	"net/http"

	stocksvc "catalog-storefront/internal/service/stock"
	"github.com/gin-gonic/gin"
)

type scanLoginRequest struct {
	Password string `json:"password"`
}

func scanLoginHandler(auth scanAuth, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req scanLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		token, err := auth.Login(req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(scanCookie, token, auth.TTLSeconds(), "/", "", secure, true)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func scanLogoutHandler(auth scanAuth, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(scanCookie); err == nil {
			auth.Logout(token)
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(scanCookie, "", -1, "/", "", secure, true)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func stockMoveHandler(svc stockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req stocksvc.MoveInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		move, err := svc.Move(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, move)
	}
}
