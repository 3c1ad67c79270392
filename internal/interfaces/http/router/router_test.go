package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("informes", "/informes")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/informes/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroup(t *testing.T) {
	t.Run("carries name and prefix", func(t *testing.T) {
		g := NewDomainGroup("gastos", "/gastos")
		assert.Equal(t, "gastos", g.Name())
		assert.Equal(t, "/gastos", g.Prefix())
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("gastos", "/gastos")
		g.Use(func(c *gin.Context) {
			c.Header("X-Scope", "gastos")
			c.Next()
		})
		g.GET("", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/gastos", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gastos", w.Header().Get("X-Scope"))
	})
}
