package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alex-pricope/contest-voting/logging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logging.Log = logrus.New()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.POST("/api/vote", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"error": "you have already voted"})
	})
	return r
}

func TestCORSMiddleware(t *testing.T) {
	router := setupRouter(t)

	t.Run("Preflight is answered with 204 and CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/vote", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusNoContent, res.Code)
		assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, res.Header().Get("Access-Control-Allow-Headers"), "x-admin-token")
	})

	t.Run("Error responses still carry CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/vote", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusConflict, res.Code)
		assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAdminAuthMiddleware(t *testing.T) {
	logging.Log = logrus.New()
	t.Setenv("ADMIN_TOKEN", "secret")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/admin/ping", AdminAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	t.Run("Missing token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/ping", nil)
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Wrong token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/ping", nil)
		req.Header.Set("x-admin-token", "guess")
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("Valid token passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/ping", nil)
		req.Header.Set("x-admin-token", "secret")
		res := httptest.NewRecorder()
		r.ServeHTTP(res, req)
		assert.Equal(t, http.StatusOK, res.Code)
	})
}
