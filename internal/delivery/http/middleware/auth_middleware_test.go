package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/credential"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newAuthRouter(creds *credential.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.AuthMiddleware(creds))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyUserID)))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	creds := credential.New("test-secret", bcrypt.MinCost)
	token, err := creds.IssueToken("u1")
	assert.NoError(t, err)

	t.Run("Should reject a request without a token", func(t *testing.T) {
		r := newAuthRouter(creds)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)

		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "User not authenticated")
	})

	t.Run("Should accept the session cookie", func(t *testing.T) {
		r := newAuthRouter(creds)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: token})

		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
	})

	t.Run("Should accept a bearer header", func(t *testing.T) {
		r := newAuthRouter(creds)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", rec.Body.String())
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other := credential.New("other-secret", bcrypt.MinCost)
		forged, err := other.IssueToken("u1")
		assert.NoError(t, err)

		r := newAuthRouter(creds)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: forged})

		r.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid or expired token")
	})
}
