package processor

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the processor package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger configures the processor package's logger.
// Processors created afterwards use it unless WithLogger overrides it.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
