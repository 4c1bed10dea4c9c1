package aurora

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrorKind classifies a failure per §7. Only the Core loop surfaces errors
// to the host; every other layer converts a Kind into a per-object
// "render nothing this frame" decision.
type ErrorKind uint8

const (
	// KindTransient is data not yet available (an asset or tile still
	// loading). Never logged at warning level; propagates as a status code.
	KindTransient ErrorKind = iota
	// KindPermanent is data confirmed absent (404, missing field, an SGP4
	// propagation that has diverged). Logged once per key, then the owning
	// object's error flag goes sticky and further calls return silently.
	KindPermanent
	// KindProgramming is a caller contract violation (nil parent, unknown
	// attribute, bad class descriptor). Panics in debug builds, is
	// best-effort ignored in release.
	KindProgramming
	// KindNumerical is a time conversion out of range or a NaN input. The
	// operation returns a NaN sentinel and the caller short-circuits.
	KindNumerical
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindPermanent:
		return "permanent"
	case KindProgramming:
		return "programming"
	case KindNumerical:
		return "numerical"
	default:
		return "unknown"
	}
}

// EngineError pairs an ErrorKind with a cause, distinguishing an assertion
// failure (panic in debug, ignored in release) from an ordinary returned
// error.
type EngineError struct {
	Kind  ErrorKind
	Cause error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("aurora: %s: %v", e.Kind, e.Cause)
}

func (e *EngineError) Unwrap() error { return e.Cause }

// NewError constructs an EngineError of the given kind.
func NewError(kind ErrorKind, msg string) *EngineError {
	return &EngineError{Kind: kind, Cause: errors.New(msg)}
}

// IsKind reports whether err (or something it wraps) is an EngineError of
// the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}

// loggedOnce tracks permanent-error keys already logged, so a sticky
// failure (§7: "logged once per key, then silently returned") does not
// spam the log on every subsequent per-frame lookup.
var loggedOnce = map[string]struct{}{}

// LogPermanentOnce logs a KindPermanent failure the first time key is seen
// and is silent afterward. This is the only place non-debug code is
// permitted to log at warning level, per §7's propagation policy — callers
// in hot per-frame paths must not log directly.
func LogPermanentOnce(key string, msg string, fields map[string]any) {
	if _, ok := loggedOnce[key]; ok {
		return
	}
	loggedOnce[key] = struct{}{}
	ev := log.Warn()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Str("key", key).Msg(msg)
}

// SetLogLevel configures the package-wide zerolog level. The host
// application owns its own logger configuration; this only affects the
// engine's own ambient diagnostics (§1.1).
func SetLogLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// assertf panics with a formatted message when globalDebug is enabled,
// and is a no-op in release builds — the KindProgramming policy of §7.
func assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	if globalDebug {
		panic(fmt.Sprintf("aurora: assertion failed: "+format, args...))
	}
}
