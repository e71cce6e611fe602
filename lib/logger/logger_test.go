package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xorcare/pointer"
)

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("TRACE")
	require.NoError(t, err)
	require.Equal(t, LogLevelTrace, level)

	level, err = parseLevel("warning")
	require.NoError(t, err)
	require.Equal(t, LogLevelWarn, level)

	_, err = parseLevel("verbose")
	require.Error(t, err)
}

func TestErrorReturnsFormatted(t *testing.T) {
	err := Error("event %d not saved: %s", 5, "db closed")
	require.EqualError(t, err, "event 5 not saved: db closed")
}

func TestInitLoggerLevel(t *testing.T) {
	t.Cleanup(func() { InitLogger(nil) })

	InitLogger(&Config{Level: pointer.String("debug")})
	require.Equal(t, LogLevelDebug, GetLevel())

	InitLogger(nil)
	require.Equal(t, LogLevelInfo, GetLevel())

	require.Panics(t, func() { InitLogger(&Config{Level: pointer.String("loud")}) })
}
