package log

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

func TestErrorWithTraceID_ReusesRequestID(t *testing.T) {
	logger, hook := test.NewNullLogger()

	traceID := ErrorWithTraceID(logger, Fields{RequestIDKey: "01J0000000000000000000000A"}, "failed")

	assert.Equal(t, "01J0000000000000000000000A", traceID)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, traceID, hook.LastEntry().Data["trace_id"])
}

func TestErrorWithTraceID_GeneratesWhenUnknown(t *testing.T) {
	logger, hook := test.NewNullLogger()

	traceID := ErrorWithTraceID(logger, Fields{RequestIDKey: "unknown"}, "failed")

	assert.Len(t, traceID, 36)
	assert.Equal(t, traceID, hook.LastEntry().Data["trace_id"])
}

func TestWithRequestID(t *testing.T) {
	logger, hook := test.NewNullLogger()

	WithRequestID(context.WithValue(context.Background(), RequestIDKey, "abc"), logger).Info("tagged")
	assert.Equal(t, "abc", hook.LastEntry().Data[RequestIDKey])

	WithRequestID(context.Background(), logger).Info("untagged")
	assert.Equal(t, "unknown", hook.LastEntry().Data[RequestIDKey])
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, levelFromEnv())

	t.Setenv("LOG_LEVEL", "nonsense")
	assert.Equal(t, logrus.DebugLevel, levelFromEnv())
}
