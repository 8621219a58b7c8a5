package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.SugaredLogger]

// Init builds the process logger at the given level ("debug", "info", ...).
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	current.Store(l.Sugar())
	return nil
}

// GetLogger falls back to a development logger until Init runs.
func GetLogger() *zap.SugaredLogger {
	if s := current.Load(); s != nil {
		return s
	}
	l, _ := zap.NewDevelopment()
	current.CompareAndSwap(nil, l.Sugar())
	return current.Load()
}

func Sync() {
	if s := current.Load(); s != nil {
		_ = s.Sync()
	}
}
