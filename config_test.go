package jaz

import (
	"flag"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_SetLogger_overrides_package_logger(t *testing.T) {
	original := logger
	t.Cleanup(func() { logger = original })

	replacement := slog.Default()
	SetLogger(replacement)
	require.Same(t, replacement, logger)
}

func Test_SetLogger_nil_resets_to_default(t *testing.T) {
	original := logger
	t.Cleanup(func() { logger = original })

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	SetLogger(nil)
	require.Same(t, slog.Default(), logger)
}

func Test_hookTimeoutEnabled_prefers_var_over_flag(t *testing.T) {
	originalVar := DefaultHookTimeout
	originalFlag := *_flagDefaultHookTimeout
	t.Cleanup(func() {
		DefaultHookTimeout = originalVar
		*_flagDefaultHookTimeout = originalFlag
	})

	*_flagDefaultHookTimeout = time.Second
	DefaultHookTimeout = 5 * time.Millisecond

	require.Equal(t, 5*time.Millisecond, hookTimeoutEnabled())
}

func Test_hookTimeoutEnabled_falls_back_to_flag(t *testing.T) {
	originalVar := DefaultHookTimeout
	originalFlag := *_flagDefaultHookTimeout
	t.Cleanup(func() {
		DefaultHookTimeout = originalVar
		*_flagDefaultHookTimeout = originalFlag
	})

	DefaultHookTimeout = 0
	*_flagDefaultHookTimeout = 10 * time.Millisecond

	require.Equal(t, 10*time.Millisecond, hookTimeoutEnabled())
}

func Test_hookTimeoutEnabled_zero_when_neither_set(t *testing.T) {
	originalVar := DefaultHookTimeout
	originalFlag := *_flagDefaultHookTimeout
	t.Cleanup(func() {
		DefaultHookTimeout = originalVar
		*_flagDefaultHookTimeout = originalFlag
	})

	DefaultHookTimeout = 0
	*_flagDefaultHookTimeout = 0

	require.Equal(t, time.Duration(0), hookTimeoutEnabled())
}

func Test_echoOutputOnSuccess_either_source_enables_it(t *testing.T) {
	originalVar := EchoOutputOnSuccess
	originalFlag := *_flagEchoOutputOnSuccess
	t.Cleanup(func() {
		EchoOutputOnSuccess = originalVar
		*_flagEchoOutputOnSuccess = originalFlag
	})

	EchoOutputOnSuccess = false
	*_flagEchoOutputOnSuccess = false
	require.False(t, echoOutputOnSuccess())

	EchoOutputOnSuccess = true
	require.True(t, echoOutputOnSuccess())

	EchoOutputOnSuccess = false
	*_flagEchoOutputOnSuccess = true
	require.True(t, echoOutputOnSuccess())
}

func Test_config_flags_are_registered(t *testing.T) {
	require.NotNil(t, flag.Lookup("jaz.default-hook-timeout"))
	require.NotNil(t, flag.Lookup("jaz.echo-output-on-success"))
}
