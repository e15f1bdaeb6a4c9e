package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequest_AttachesRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithRequest(zap.New(core), "GET", "/api/v1/deals", "req-123").Info("handled")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/v1/deals", fields["path"])
	assert.Equal(t, "req-123", fields["request_id"])
}

func TestWithUser_AttachesUserFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	WithUser(zap.New(core), 7, "owner").Info("user logged in")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.EqualValues(t, 7, fields["user_id"])
	assert.Equal(t, "owner", fields["username"])
}
