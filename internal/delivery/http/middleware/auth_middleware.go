package middleware

import (
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/audit"
	"go-jobboard-backend/pkg/credential"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenCookieName is the session cookie the frontend carries.
const TokenCookieName = "token"

// AuthMiddleware validates the session token and attaches the caller's
// identity to the request context. It rejects with a generic 401 on any
// failure; nothing about why validation failed reaches the client.
func AuthMiddleware(creds *credential.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// Prefer the session cookie; fall back to a bearer header for
		// non-browser clients.
		if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
			tokenString = cookie
		} else if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
			c.Abort()
			return
		}

		userID, err := creds.ValidateToken(tokenString)
		if err != nil {
			if logger := audit.Default(); logger != nil {
				logger.Log(audit.Event{
					Event:     audit.EventInvalidToken,
					IP:        c.ClientIP(),
					UserAgent: c.GetHeader("User-Agent"),
					RequestID: c.GetString("RequestID"),
				})
			}
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), userID)
		c.Next()
	}
}
