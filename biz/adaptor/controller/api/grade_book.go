package api

import (
	"classroom/biz/adaptor"
	"classroom/biz/application/dto/classroom"
	"classroom/biz/infrastructure/token"
	"classroom/biz/infrastructure/util/log"
	"classroom/provider"
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetGradeBook .
// @router /classes/:classId/gradeBook [GET]
func GetGradeBook(ctx context.Context, c *app.RequestContext) {
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
	resp, err := p.GradeBookService.GetGradeBook(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ExportGradeBook 以附件形式下载成绩册
// @router /classes/:classId/gradeBook/export [GET]
func ExportGradeBook(ctx context.Context, c *app.RequestContext) {
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
	resp, err := p.GradeBookService.ExportGradeBook(ctx, &req)
	if err != nil {
		adaptor.PostProcess(ctx, c, &req, nil, err)
		return
	}

	log.CtxInfo(ctx, "[ExportGradeBook] classId=%s, size=%d", req.ClassId, len(resp.Data))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resp.FileName))
	c.Data(consts.StatusOK, xlsxContentType, resp.Data)
}

// RecordMark .
// @router /classes/:classId/marks [PUT]
func RecordMark(ctx context.Context, c *app.RequestContext) {
	ctx, err := authenticate(ctx, c, token.KindAccess)
	if err != nil {
		adaptor.PostProcess(ctx, c, nil, nil, err)
		return
	}
	var req classroom.RecordMarkReq
	if err = c.BindAndValidate(&req); err != nil {
		c.String(consts.StatusBadRequest, err.Error())
		return
	}

	p := provider.Get()
	resp, err := p.GradeBookService.RecordMark(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
