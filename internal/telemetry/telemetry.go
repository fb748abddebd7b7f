// Package telemetry wraps zap as a process-wide structured logger, mirroring
// the shape of the teacher's own JSONL event log (cmd/bd/log.go): production
// config by default, debug level under --verbose.
package telemetry

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger at info level, or debug when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// CallID mints a short correlation ID for one BWT call, so every step-level
// log line it emits can be grepped together.
func CallID() string {
	return uuid.New().String()[:8]
}

// Event logs one BWT step outcome, the unit of structured logging this
// store emits: which step ran, for which record, and how it ended.
func Event(log *zap.Logger, callID, step, action, recordID string, err error) {
	fields := []zap.Field{
		zap.String("callId", callID),
		zap.String("step", step),
		zap.String("action", action),
	}
	if recordID != "" {
		fields = append(fields, zap.String("recordId", recordID))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		log.Warn("bwt step failed", fields...)
		return
	}
	log.Info("bwt step", fields...)
}
