package service

import (
	"classroom/biz/adaptor"
	"classroom/biz/application/dto/classroom"
	"classroom/biz/application/guard"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/repository/class"
	"classroom/biz/infrastructure/repository/lesson"
	"classroom/biz/infrastructure/repository/mark"
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/util/export"
	"classroom/biz/infrastructure/util/log"
	"context"
	"fmt"
	"strings"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IGradeBookService interface {
	GetGradeBook(ctx context.Context, req *classroom.ClassIdReq) (*classroom.GradeBookResp, error)
	ExportGradeBook(ctx context.Context, req *classroom.ClassIdReq) (*classroom.ExportGradeBookResp, error)
	RecordMark(ctx context.Context, req *classroom.RecordMarkReq) (*classroom.Mark, error)
}

type GradeBookService struct {
	ClassMapper  class.IMongoMapper
	UserMapper   user.IMongoMapper
	LessonMapper lesson.IMongoMapper
	MarkMapper   mark.IMySQLMapper
}

var GradeBookServiceSet = wire.NewSet(
	wire.Struct(new(GradeBookService), "*"),
	wire.Bind(new(IGradeBookService), new(*GradeBookService)),
)

// GetGradeBook 获取班级的全部成绩, 仅拥有者可见
func (s *GradeBookService) GetGradeBook(ctx context.Context, req *classroom.ClassIdReq) (*classroom.GradeBookResp, error) {
	c, err := s.ownedClass(ctx, req.ClassId, consts.ErrOpenGradeBook.Error())
	if err != nil {
		return nil, err
	}

	marks, err := s.MarkMapper.FindByClass(ctx, c.ID.Hex())
	if err != nil {
		log.CtxError(ctx, "获取成绩失败, classId=%s, err=%v", c.ID.Hex(), err)
		return nil, consts.ErrGradeBook
	}
	return &classroom.GradeBookResp{
		Marks: lo.Map(marks, func(m *mark.Mark, _ int) *classroom.Mark { return toMarkDTO(m) }),
	}, nil
}

// ExportGradeBook 导出成绩册为 xlsx
func (s *GradeBookService) ExportGradeBook(ctx context.Context, req *classroom.ClassIdReq) (*classroom.ExportGradeBookResp, error) {
	c, err := s.ownedClass(ctx, req.ClassId, consts.ErrOpenGradeBook.Error())
	if err != nil {
		return nil, err
	}

	marks, err := s.MarkMapper.FindByClass(ctx, c.ID.Hex())
	if err != nil {
		log.CtxError(ctx, "获取成绩失败, classId=%s, err=%v", c.ID.Hex(), err)
		return nil, consts.ErrGradeBook
	}
	students, err := s.UserMapper.FindMany(ctx, lo.Uniq(lo.Map(marks, func(m *mark.Mark, _ int) string { return m.StudentID })))
	if err != nil {
		return nil, err
	}
	lessons, err := s.LessonMapper.FindByIDs(ctx, c.Lessons)
	if err != nil {
		return nil, err
	}

	names := lo.SliceToMap(students, func(u *user.User) (string, string) {
		return u.ID.Hex(), strings.TrimSpace(u.Surname + " " + u.Name)
	})
	titles := lo.SliceToMap(lessons, func(l *lesson.Lesson) (string, string) {
		return l.ID.Hex(), l.Title
	})
	rows := lo.Map(marks, func(m *mark.Mark, _ int) export.GradeBookRow {
		return export.GradeBookRow{
			Student:    lo.ValueOr(names, m.StudentID, m.StudentID),
			Lesson:     lo.ValueOr(titles, m.LessonID, m.LessonID),
			Value:      m.Value,
			CreateTime: m.CreateTime,
		}
	})

	data, err := export.GradeBook(rows)
	if err != nil {
		log.CtxError(ctx, "导出成绩册失败: %v", err)
		return nil, consts.ErrGradeBook
	}
	return &classroom.ExportGradeBookResp{
		FileName: fmt.Sprintf("grade-book-%s.xlsx", c.ID.Hex()),
		Data:     data,
	}, nil
}

// RecordMark 为班级成员在某一课时记录成绩
func (s *GradeBookService) RecordMark(ctx context.Context, req *classroom.RecordMarkReq) (*classroom.Mark, error) {
	c, err := s.ownedClass(ctx, req.ClassId, consts.ErrRecordMark.Error())
	if err != nil {
		return nil, err
	}
	if !c.IsMember(req.StudentId) {
		return nil, consts.ErrUserNotFound
	}
	if !lo.Contains(c.Lessons, req.LessonId) {
		return nil, consts.ErrLessonNotFound
	}

	m := &mark.Mark{
		ClassID:   c.ID.Hex(),
		StudentID: req.StudentId,
		LessonID:  req.LessonId,
		Value:     req.Value,
	}
	if err = s.MarkMapper.Insert(ctx, m); err != nil {
		log.CtxError(ctx, "记录成绩失败: %v", err)
		return nil, err
	}
	return toMarkDTO(m), nil
}

// ownedClass 成绩册相关操作的公共校验, 调用方必须是班级拥有者
func (s *GradeBookService) ownedClass(ctx context.Context, classID, msg string) (*class.Class, error) {
	userID := adaptor.ExtractUserMeta(ctx).GetUserId()
	if userID == "" {
		return nil, consts.ErrNotAuthentication
	}
	if err := guard.RequireValidID(classID, consts.ErrClassNotFound.Error()); err != nil {
		return nil, err
	}
	c, err := loadClass(ctx, s.ClassMapper, classID)
	if err != nil {
		return nil, err
	}
	if err = guard.RequireOwner(c.Owners, userID, msg); err != nil {
		return nil, err
	}
	return c, nil
}
