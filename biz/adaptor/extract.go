package adaptor

import (
	"classroom/biz/application/dto/basic"
	"classroom/biz/infrastructure/consts"
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
)

type ctxKey string

const (
	hertzContext ctxKey = "hertz_context"
	userMetaKey  ctxKey = "user_meta"
)

func InjectContext(ctx context.Context, c *app.RequestContext) context.Context {
	return context.WithValue(ctx, hertzContext, c)
}

func ExtractContext(ctx context.Context) (*app.RequestContext, error) {
	c, ok := ctx.Value(hertzContext).(*app.RequestContext)
	if !ok {
		return nil, errors.New("hertz context not found")
	}
	return c, nil
}

// InjectUserMeta 写入已认证的调用方身份
func InjectUserMeta(ctx context.Context, user *basic.UserMeta) context.Context {
	return context.WithValue(ctx, userMetaKey, user)
}

// ExtractUserMeta 获取调用方身份, 未认证时返回空的 UserMeta
func ExtractUserMeta(ctx context.Context) *basic.UserMeta {
	user, ok := ctx.Value(userMetaKey).(*basic.UserMeta)
	if !ok || user == nil {
		return new(basic.UserMeta)
	}
	return user
}

// ExtractBearerToken 从 Authorization 头中取出令牌, 兼容不带 Bearer 前缀的写法
func ExtractBearerToken(c *app.RequestContext) (string, error) {
	header := strings.TrimSpace(string(c.GetHeader(consts.Authorization)))
	if header == "" {
		return "", consts.ErrNotAuthentication
	}
	return strings.TrimSpace(strings.TrimPrefix(header, consts.BearerPrefix)), nil
}
