package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap.SugaredLogger to ports.Logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New creates a development logger on stderr when verbose, and a
// warn-and-above production logger otherwise.
func New(verbose bool) (*ZapLogger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stderr"}
	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: base.Sugar()}, nil
}

// NewNop discards everything. Used by tests and as a fallback when zap cannot build.
func NewNop() *ZapLogger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.sugar.Debugw(msg, keysAndValues(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.sugar.Infow(msg, keysAndValues(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.sugar.Warnw(msg, keysAndValues(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	kv := keysAndValues(fields)
	if err != nil {
		kv = append(kv, "error", err)
	}
	l.sugar.Errorw(msg, kv...)
}

func keysAndValues(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return kv
}
