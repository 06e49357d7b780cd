//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"auction-house/internal/handler/middleware"
	"auction-house/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRequest(cfg config.CORSConfig, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(cfg))
	r.GET("/api/listings", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	req.Header.Set("Origin", origin)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewCORSMiddleware(t *testing.T) {
	base := config.CORSConfig{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Authorization"},
		AllowCredentials: true,
	}

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		cfg := base
		cfg.AllowOrigins = []string{"*"}

		w := corsRequest(cfg, "https://market.example")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("configured origin is echoed", func(t *testing.T) {
		cfg := base
		cfg.AllowOrigins = []string{"https://market.example"}

		w := corsRequest(cfg, "https://market.example")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://market.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin is refused", func(t *testing.T) {
		cfg := base
		cfg.AllowOrigins = []string{"https://market.example"}

		w := corsRequest(cfg, "https://elsewhere.example")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
