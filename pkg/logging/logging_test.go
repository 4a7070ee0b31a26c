package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	require.NoError(t, Setup(false, "csvcombine", "test"))
	require.NotNil(t, Logger)
	assert.False(t, Logger.Core().Enabled(zapcore.DebugLevel))
	assert.Same(t, Logger, zap.L())

	require.NoError(t, Setup(true, "csvcombine", "test"))
	assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))
}
