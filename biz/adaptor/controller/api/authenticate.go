package api

import (
	"classroom/biz/adaptor"
	"classroom/biz/infrastructure/token"
	"classroom/provider"
	"context"

	"github.com/cloudwego/hertz/pkg/app"
)

// authenticate 校验 Authorization 头中的令牌, 成功后将调用方身份写入 ctx
func authenticate(ctx context.Context, c *app.RequestContext, kind token.Kind) (context.Context, error) {
	raw, err := adaptor.ExtractBearerToken(c)
	if err != nil {
		return ctx, err
	}
	meta, err := provider.Get().AuthService.Authenticate(ctx, raw, kind)
	if err != nil {
		return ctx, err
	}
	return adaptor.InjectUserMeta(adaptor.InjectContext(ctx, c), meta), nil
}
