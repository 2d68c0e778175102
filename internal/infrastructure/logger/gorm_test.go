package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	zl, _ := observed(zapcore.DebugLevel)
	gl := NewGormLogger(zl, gormlogger.Info)

	other, ok := gl.LogMode(gormlogger.Error).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, gormlogger.Error, other.logLevel)
}

func TestGormLogger_TraceError(t *testing.T) {
	zl, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(zl, gormlogger.Warn)

	ctx := context.WithValue(context.Background(), requestIDKey, "req-1")
	gl.Trace(ctx, time.Now(), func() (string, int64) { return "UPDATE loans", 0 }, errors.New("boom"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "req-1", entry.ContextMap()["request_id"])
}

func TestGormLogger_TraceIgnoresNotFound(t *testing.T) {
	zl, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(zl, gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT", 0 }, gormlogger.ErrRecordNotFound)
	assert.Zero(t, logs.Len())
}

func TestGormLogger_TraceSlow(t *testing.T) {
	zl, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(zl, gormlogger.Warn)

	gl.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) { return "SELECT", 1 }, nil)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestGormLogger_Silent(t *testing.T) {
	zl, logs := observed(zapcore.DebugLevel)
	gl := NewGormLogger(zl, gormlogger.Silent)

	gl.Info(context.Background(), "x %d", 1)
	gl.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT", 1 }, errors.New("boom"))
	assert.Zero(t, logs.Len())
}

func TestGormLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, GormLevel("debug"))
	assert.Equal(t, gormlogger.Error, GormLevel("error"))
	assert.Equal(t, gormlogger.Warn, GormLevel("info"))
}
