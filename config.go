package jaz

import (
	"flag"
	"log/slog"
	"time"
)

//nolint:gochecknoglobals // mirrors the teacher's SuccessMessageEnabled/_flagEnableSuccessMessage pair: a var a host can set directly, plus a flag for wiring it from the command line
var (
	// DefaultHookTimeout bounds how long a single BeforeEach/AfterEach/
	// BeforeAll/AfterAll hook may run when ctx carries no earlier
	// deadline of its own. Zero (the default) disables the bound.
	DefaultHookTimeout = time.Duration(0)
	_flagDefaultHookTimeout = flag.Duration(
		"jaz.default-hook-timeout", 0,
		"Default timeout applied to a BeforeEach/AfterEach/BeforeAll/AfterAll hook that has no deadline of its own (0 disables it)",
	)

	// EchoOutputOnSuccess controls whether runOne logs a passing test's
	// output buffer, at Debug level, through the package logger. Nothing
	// is logged for a passing test when it is off.
	EchoOutputOnSuccess = false
	_flagEchoOutputOnSuccess = flag.Bool(
		"jaz.echo-output-on-success", false,
		"Whether to log a passing test's output buffer at debug level",
	)
)

//nolint:gochecknoglobals // overridable sink for the executor's own internal diagnostics
var logger = slog.Default()

// SetLogger overrides the package-level logger the executor uses for its
// own internal diagnostics - a swallowed listener panic, an echoed output
// buffer - mirroring the teacher's SuccessMessageEnabled knob for a
// setting a host wires up once, typically from TestMain. A nil logger
// resets to slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	logger = l
}

// hookTimeoutEnabled returns the default hook timeout to apply:
// DefaultHookTimeout when it is positive, otherwise the flag's value. A
// zero result means no default hook timeout is applied.
func hookTimeoutEnabled() time.Duration {
	if DefaultHookTimeout > 0 {
		return DefaultHookTimeout
	}
	return *_flagDefaultHookTimeout
}

func echoOutputOnSuccess() bool {
	return EchoOutputOnSuccess || *_flagEchoOutputOnSuccess
}
