package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	l := New(Config{Level: "warn", Format: "json"})
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.Equal(t, "", RequestID(context.Background()))
}

func TestEchoRequestLogger(t *testing.T) {
	zl, logs := observed(zapcore.DebugLevel)

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(EchoRequestLogger(zl))

	var seen string
	e.GET("/ping", func(c echo.Context) error {
		seen = RequestID(c.Request().Context())
		FromContext(c.Request().Context()).Info("inside")
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc")
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "abc", seen)

	var inside, access bool
	for _, entry := range logs.All() {
		switch entry.Message {
		case "inside":
			inside = entry.ContextMap()["request_id"] == "abc"
		case "request":
			access = entry.ContextMap()["status"] == int64(http.StatusNoContent)
		}
	}
	assert.True(t, inside)
	assert.True(t, access)
}
