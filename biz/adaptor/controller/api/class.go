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

// ListClasses .
// @router /classes [GET]
func ListClasses(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.ListClasses(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// CreateClass .
// @router /classes [POST]
func CreateClass(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.CreateClassReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.CreateClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ConnectClass .
// @router /classes/connect [POST]
func ConnectClass(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.ConnectClassReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.ConnectClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ClassInfo .
// @router /classes/:classId [GET]
func ClassInfo(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.ClassIdReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.ClassInfo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateClassInfo .
// @router /classes/:classId [PATCH]
func UpdateClassInfo(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.UpdateClassReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.UpdateClassInfo(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// RemoveClass .
// @router /classes/:classId [DELETE]
func RemoveClass(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.ClassIdReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.RemoveClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// RemoveMember .
// @router /classes/:classId/removeMember [PATCH]
func RemoveMember(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.RemoveMemberReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.RemoveMember(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// AddOwner .
// @router /classes/:classId/addOwner [PATCH]
func AddOwner(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.UpdateOwnersReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.AddOwner(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// RemoveOwner .
// @router /classes/:classId/removeOwner [PATCH]
func RemoveOwner(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.UpdateOwnersReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.ClassService.RemoveOwner(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
