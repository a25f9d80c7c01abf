package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-ledger/internal/api/middleware"
	"github.com/feral-file/ff-nft-ledger/internal/api/shared/dto"
	"github.com/feral-file/ff-nft-ledger/internal/metrics"
	"github.com/feral-file/ff-nft-ledger/internal/mocks"
)

func TestRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockAPIExecutor(ctrl)
	m := metrics.New()

	srv := New(Config{Host: "127.0.0.1", Port: 0}, exec, m, middleware.AuthConfig{})
	router := srv.Router()

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.REQUEST_ID_HEADER))
	})

	t.Run("requests are recorded by route", func(t *testing.T) {
		exec.EXPECT().GetOwner(gomock.Any(), uint64(5)).Return(&dto.OwnerResponse{TokenID: 5}, nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tokens/5/owner", nil))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `route="/api/v1/tokens/:token_id/owner"`)
	})

	t.Run("mutations without credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/tokens/mint", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestShutdown_NotStarted(t *testing.T) {
	srv := New(Config{}, nil, nil, middleware.AuthConfig{})
	assert.NoError(t, srv.Shutdown(context.Background()))
}
