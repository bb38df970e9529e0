package cabi

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the cabi package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the cabi package's logger.
// This must be called before any exported function is used.
func SetLogger(l *zap.Logger) {
	logger = l
}

func sentinel(op string, err error) {
	Logger().Debug("returning sentinel", zap.String("op", op), zap.Error(err))
}
