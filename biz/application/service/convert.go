package service

import (
	"classroom/biz/application/dto/classroom"
	"classroom/biz/application/guard"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/repository/class"
	"classroom/biz/infrastructure/repository/lesson"
	"classroom/biz/infrastructure/repository/mark"
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/util/log"
	"context"
	"errors"

	"github.com/jinzhu/copier"
)

// loadClass 查询班级, 不存在时返回 NotFound
func loadClass(ctx context.Context, m class.IMongoMapper, id string) (*class.Class, error) {
	c, err := m.FindOne(ctx, id)
	if err != nil && !errors.Is(err, consts.ErrNotFound) {
		log.CtxError(ctx, "查询班级失败, id=%s, err=%v", id, err)
		return nil, err
	}
	if err := guard.RequireNonEmpty(c, consts.ErrClassNotFound.Error()); err != nil {
		return nil, err
	}
	return c, nil
}

func toClassDTO(c *class.Class, lessons []*lesson.Lesson) *classroom.Class {
	dto := &classroom.Class{Id: c.ID.Hex()}
	if err := copier.Copy(dto, c); err != nil {
		log.Error("copy class failed: %v", err)
	}
	if dto.Owners == nil {
		dto.Owners = []string{}
	}
	if dto.Members == nil {
		dto.Members = []string{}
	}
	if lessons != nil {
		dto.Lessons = toLessonDTOs(lessons)
	}
	return dto
}

func toLessonDTOs(lessons []*lesson.Lesson) []*classroom.Lesson {
	dtos := make([]*classroom.Lesson, 0, len(lessons))
	for _, l := range lessons {
		dto := &classroom.Lesson{Id: l.ID.Hex()}
		if err := copier.Copy(dto, l); err != nil {
			log.Error("copy lesson failed: %v", err)
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// toUserBriefs 按 ids 的顺序输出, 已不存在的用户跳过
func toUserBriefs(ids []string, users []*user.User) []*classroom.UserBrief {
	byID := make(map[string]*user.User, len(users))
	for _, u := range users {
		byID[u.ID.Hex()] = u
	}
	briefs := make([]*classroom.UserBrief, 0, len(ids))
	for _, id := range ids {
		u, ok := byID[id]
		if !ok {
			continue
		}
		brief := &classroom.UserBrief{Id: id}
		if err := copier.Copy(brief, u); err != nil {
			log.Error("copy user failed: %v", err)
		}
		briefs = append(briefs, brief)
	}
	return briefs
}

func toNotificationDTOs(ns []*user.Notification) []*classroom.Notification {
	dtos := make([]*classroom.Notification, 0, len(ns))
	for _, n := range ns {
		dtos = append(dtos, &classroom.Notification{
			Id:         n.ID,
			Text:       n.Text,
			CreateTime: n.CreateTime,
		})
	}
	return dtos
}

func toMarkDTO(m *mark.Mark) *classroom.Mark {
	return &classroom.Mark{
		Id:         m.ID,
		ClassId:    m.ClassID,
		StudentId:  m.StudentID,
		LessonId:   m.LessonID,
		Value:      m.Value,
		CreateTime: m.CreateTime,
	}
}
