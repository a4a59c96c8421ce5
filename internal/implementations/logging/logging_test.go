package logging

import (
	"context"
	"errors"
	"testing"
	"yeonghwa/internal/core/domain/logging"
	"yeonghwa/internal/core/domain/user"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEntriesAreStructured(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := fromZap(zap.New(core))

	logger.Info(
		context.Background(),
		"User has been created.",
		logging.Entry("userID", user.ID("1")),
		logging.Entry("err", errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "User has been created.", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, user.ID("1"), fields["userID"])
	assert.Equal(t, "boom", fields["err"])
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := fromZap(zap.New(core))
	ctx := context.Background()

	logger.Debug(ctx, "d")
	logger.Info(ctx, "i")
	logger.Warning(ctx, "w")
	logger.Error(ctx, "e")

	levels := []zapcore.Level{}
	for _, entry := range logs.All() {
		levels = append(levels, entry.Level)
	}
	assert.Equal(t, []zapcore.Level{
		zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel,
	}, levels)
}

func TestRequestIDIsAttached(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := fromZap(zap.New(core))
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")

	logger.Info(ctx, "Handled.")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["requestID"])
}

func TestSecretsAreRedacted(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := fromZap(zap.New(core))

	logger.Info(context.Background(), "Password set.", logging.Entry("password", user.RawPassword("secret123")))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "***", logs.All()[0].ContextMap()["password"])
}

func TestNewZapLogger(t *testing.T) {
	logger, err := NewZapLogger("debug")
	require.Nil(t, err)
	require.NotNil(t, logger)

	_, err = NewZapLogger("loud")
	assert.Error(t, err)
}
