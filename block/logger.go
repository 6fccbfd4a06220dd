package block

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the block package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the block package's logger.
// This must be called before any block is serialized.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func logSection(name string, data []byte) {
	if ce := Logger().Check(zap.DebugLevel, "section"); ce != nil {
		ce.Write(
			zap.String("name", name),
			zap.Int("size", len(data)),
			zap.String("hex", fmt.Sprintf("% X", data)),
		)
	}
}
