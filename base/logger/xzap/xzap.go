package xzap

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var (
	global *zap.Logger
	once   sync.Once
)

// SetUp 根据配置初始化全局logger，重复调用只生效一次
func SetUp(level string) error {
	var err error
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		lv := zapcore.InfoLevel
		if level != "" {
			if parsed, perr := zapcore.ParseLevel(level); perr == nil {
				lv = parsed
			}
		}
		cfg.Level = zap.NewAtomicLevelAt(lv)
		global, err = cfg.Build(zap.AddCallerSkip(1))
	})
	return err
}

// CtxWithTraceID 把trace id绑定到context，后续日志自动携带
func CtxWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// WithContext 取出带trace id的logger
func WithContext(ctx context.Context) *zap.Logger {
	l := global
	if l == nil {
		l = zap.NewNop()
	}
	if ctx == nil {
		return l
	}
	if traceID, ok := ctx.Value(ctxKey{}).(string); ok && traceID != "" {
		return l.With(zap.String("trace_id", traceID))
	}
	return l
}
