package adaptor

import (
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/util"
	"classroom/biz/infrastructure/util/log"
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorResp 错误响应体
type ErrorResp struct {
	Code    int64  `json:"code"`
	Msg     string `json:"msg"`
	TraceId string `json:"traceId,omitempty"`
}

// logValuer 含敏感字段的请求或响应, 日志中使用其脱敏后的副本
type logValuer interface {
	LogValue() any
}

func logValue(v any) any {
	if lv, ok := v.(logValuer); ok {
		return lv.LogValue()
	}
	return v
}

// PostProcess 统一处理响应, 业务错误按类别映射为 HTTP 状态码
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	log.CtxInfo(ctx, "[%s] req=%s, resp=%s, err=%v", c.Path(), util.JSONF(logValue(req)), util.JSONF(logValue(resp)), err)

	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	var en *consts.Errno
	if !errors.As(err, &en) {
		log.CtxError(ctx, "[%s] internal error: %v", c.Path(), err)
		c.JSON(http.StatusInternalServerError, &ErrorResp{
			Code:    int64(codes.Internal),
			Msg:     "internal error",
			TraceId: log.TraceID(ctx),
		})
		return
	}
	st := status.Convert(en)
	c.JSON(HTTPStatus(st.Code()), &ErrorResp{
		Code:    int64(st.Code()),
		Msg:     st.Message(),
		TraceId: log.TraceID(ctx),
	})
}

// HTTPStatus 错误类别到 HTTP 状态码
func HTTPStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.FailedPrecondition:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
