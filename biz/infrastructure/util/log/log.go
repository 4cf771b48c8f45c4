package log

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"go.opentelemetry.io/otel/trace"
)

func Info(format string, v ...any) {
	logx.Infof(format, v...)
}

func Error(format string, v ...any) {
	logx.Errorf(format, v...)
}

// CtxInfo 携带链路信息输出日志
func CtxInfo(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Infof(format, v...)
}

func CtxError(ctx context.Context, format string, v ...any) {
	logx.WithContext(ctx).Errorf(format, v...)
}

// TraceID 返回当前请求的链路id, 无链路时为空
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
