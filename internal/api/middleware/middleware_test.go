package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-nft-ledger/internal/metrics"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.NotEmpty(t, w.Header().Get(REQUEST_ID_HEADER))
	})

	t.Run("reuses the incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(REQUEST_ID_HEADER, "req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "req-123", w.Header().Get(REQUEST_ID_HEADER))
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(), Logger(metrics.New()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}
