package api

import (
	"classroom/biz/adaptor"
	"classroom/biz/application/dto/classroom"
	"classroom/biz/infrastructure/token"
	"classroom/provider"
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// SignUp .
// @router /auth/signUp [PUT]
func SignUp(ctx context.Context, c *app.RequestContext) {
	var req classroom.SignUpReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.SignUp(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SignIn .
// @router /auth/signIn [POST]
func SignIn(ctx context.Context, c *app.RequestContext) {
	var req classroom.SignInReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.SignIn(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// Logout .
// @router /auth/logout [GET]
func Logout(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.Logout(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// RefreshTokens 刷新令牌放在 Authorization 头中
// @router /auth/refresh [GET]
func RefreshTokens(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindRefresh)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.RefreshTokens(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// DeleteNotifications .
// @router /auth/deleteNotifications [PATCH]
func DeleteNotifications(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.DeleteNotificationsReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.DeleteNotifications(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
