package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(38070), ToCents(380.70))
	assert.Equal(t, int64(1999), ToCents(19.99))
	assert.Equal(t, int64(200), ToCents(2))
	assert.Equal(t, int64(0), ToCents(0))
	assert.InDelta(t, 380.70, FromCents(38070), 1e-9)
	assert.Equal(t, "$380.70", FormatUSD(380.7))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("s")
	token, err := GenerateToken(secret, "admin", "ops@acme.test", time.Hour)
	require.NoError(t, err)

	sub, err := ExtractIDFromToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)

	_, err = ExtractIDFromToken([]byte("other"), token)
	assert.Error(t, err)

	expired, err := GenerateToken(secret, "admin", "ops@acme.test", -time.Minute)
	require.NoError(t, err)
	_, err = ExtractIDFromToken(secret, expired)
	assert.Error(t, err)

	_, err = GenerateToken(nil, "admin", "", time.Hour)
	assert.Error(t, err)
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal Server Error"}`, w.Body.String())
}
