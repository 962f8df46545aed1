package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salesnav/handlers"
	"salesnav/services/discovery"
	"salesnav/services/onboarding"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := discovery.NewMemoryStore()
	ds, err := discovery.NewDefaultDiscoveryService(store, nil, zap.NewNop())
	require.NoError(t, err)
	obs, err := onboarding.NewDefaultOnboardingService(store, zap.NewNop())
	require.NoError(t, err)

	hb := &handlers.HandlerBundle{
		Payment:      handlers.NewPaymentHandler(nil),
		Discovery:    handlers.NewDiscoveryHandler(ds),
		Proposal:     handlers.NewProposalHandler(nil),
		Onboarding:   handlers.NewOnboardingHandler(obs),
		Admin:        handlers.NewAdminHandler(nil, "", "", nil),
		Health:       handlers.HealthHandler,
		Dependencies: handlers.DependenciesHandler,
		AdminSecret:  []byte("secret"),
	}
	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

func serve(r *gin.Engine, method, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterRoutes(t *testing.T) {
	r := newRouter(t)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health/dependencies").Code)
	assert.Equal(t, http.StatusCreated, serve(r, http.MethodPost, "/api/discovery/sessions").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/discovery/sessions/unknown/tom").Code)

	// Admin listing requires a token.
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/admin/checkouts").Code)
}

func TestRegisterRoutes_CORSPreflight(t *testing.T) {
	r := newRouter(t)
	w := serve(r, http.MethodOptions, "/api/mcp/process-payment",
		"Origin", "https://app.example.com",
		"Access-Control-Request-Method", "POST",
		"Access-Control-Request-Headers", "Content-Type, Idempotency-Key")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
