package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	retrieved := FromContext(context.Background())
	assert.NotNil(t, retrieved)
	// Should return a no-op logger that doesn't panic
	retrieved.Info("test")
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, enriched := WithRequestID(ctx, logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.NotNil(t, enriched)
	assert.Equal(t, enriched, FromContext(ctx))
}

func TestWithActor(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, enriched := WithActor(ctx, logger, "trader-42")

	assert.Equal(t, "trader-42", GetActor(ctx))
	assert.NotNil(t, enriched)
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestGetActor_NotFound(t *testing.T) {
	assert.Equal(t, "", GetActor(context.Background()))
}

func TestContextChaining(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	ctx := context.Background()

	ctx, _ = WithRequestID(ctx, logger, "req-456")
	ctx, enriched := WithActor(ctx, FromContext(ctx), "accountant")

	enriched.Info("chained")

	entries := recorded.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-456", fields["request_id"])
	assert.Equal(t, "accountant", fields["actor"])
}

func TestFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
	retrieved := FromContext(ctx)
	assert.NotNil(t, retrieved)
	retrieved.Info("should not panic")
}

func TestMultipleWithRequestID(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	ctx, _ = WithRequestID(ctx, logger, "first")
	ctx, _ = WithRequestID(ctx, logger, "second")

	// Latest value wins
	assert.Equal(t, "second", GetRequestID(ctx))
}
