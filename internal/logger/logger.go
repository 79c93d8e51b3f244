// Package logger builds the zap logger. The terminal belongs to the menu, so
// log lines go to a file and never to stdout.
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens path for appending and returns a JSON logger at level. Every
// entry carries the same session id so one run can be picked out of the
// shared file.
func New(path, level string) (*zap.SugaredLogger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(f),
		lvl,
	)
	return zap.New(core).Sugar().With("session", uuid.NewString()), nil
}

// NewOrNop is New, falling back to a no-op logger when the file cannot be
// opened. The returned error is only for reporting.
func NewOrNop(path, level string) (*zap.SugaredLogger, error) {
	log, err := New(path, level)
	if err != nil {
		return zap.NewNop().Sugar(), err
	}
	return log, nil
}

func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, errors.Newf("unknown log level %q", level)
	}
}
