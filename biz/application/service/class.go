package service

import (
	"classroom/biz/adaptor"
	"classroom/biz/application/dto/basic"
	"classroom/biz/application/dto/classroom"
	"classroom/biz/application/guard"
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/repository/class"
	"classroom/biz/infrastructure/repository/lesson"
	"classroom/biz/infrastructure/repository/tx"
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/util/log"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IClassService interface {
	ListClasses(ctx context.Context) (*classroom.ListClassesResp, error)
	ConnectClass(ctx context.Context, req *classroom.ConnectClassReq) (*classroom.Class, error)
	CreateClass(ctx context.Context, req *classroom.CreateClassReq) (*classroom.Class, error)
	RemoveMember(ctx context.Context, req *classroom.RemoveMemberReq) (*classroom.Class, error)
	RemoveClass(ctx context.Context, req *classroom.ClassIdReq) (*basic.Response, error)
	ClassInfo(ctx context.Context, req *classroom.ClassIdReq) (*classroom.ClassInfoResp, error)
	UpdateClassInfo(ctx context.Context, req *classroom.UpdateClassReq) (*classroom.Class, error)
	AddOwner(ctx context.Context, req *classroom.UpdateOwnersReq) (*classroom.Class, error)
	RemoveOwner(ctx context.Context, req *classroom.UpdateOwnersReq) (*classroom.Class, error)
}

// ClassService 维护用户与班级之间的双向成员关系, 两侧写入总在同一事务内完成
type ClassService struct {
	Config       *config.Config
	ClassMapper  class.IMongoMapper
	UserMapper   user.IMongoMapper
	LessonMapper lesson.IMongoMapper
	Transactor   tx.Transactor
	Notifier     INotifier
}

var ClassServiceSet = wire.NewSet(
	wire.Struct(new(ClassService), "*"),
	wire.Bind(new(IClassService), new(*ClassService)),
)

// ListClasses 获取当前用户的班级及课时, 附带通知列表
func (s *ClassService) ListClasses(ctx context.Context) (*classroom.ListClassesResp, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	classes, err := s.ClassMapper.FindMany(ctx, u.Classes)
	if err != nil {
		log.CtxError(ctx, "获取班级列表失败: %v", err)
		return nil, err
	}

	dtos := make([]*classroom.Class, 0, len(classes))
	for _, c := range classes {
		lessons, err := s.LessonMapper.FindByIDs(ctx, c.Lessons)
		if err != nil {
			log.CtxError(ctx, "获取课时失败, classId=%s, err=%v", c.ID.Hex(), err)
			return nil, err
		}
		dtos = append(dtos, toClassDTO(c, lessons))
	}

	return &classroom.ListClassesResp{
		Classes:       dtos,
		Notifications: toNotificationDTOs(u.Notifications),
	}, nil
}

// ConnectClass 通过邀请码加入班级
func (s *ClassService) ConnectClass(ctx context.Context, req *classroom.ConnectClassReq) (*classroom.Class, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	userID := u.ID.Hex()

	c, err := s.ClassMapper.FindOneByAccessToken(ctx, req.AccessToken)
	if err != nil && !errors.Is(err, consts.ErrNotFound) {
		log.CtxError(ctx, "根据邀请码查询班级失败: %v", err)
		return nil, err
	}
	if err = guard.RequireNonEmpty(c, consts.ErrClassNotFound.Error()); err != nil {
		return nil, err
	}
	classID := c.ID.Hex()

	if u.HasClass(classID) || c.IsOwner(userID) || c.IsMember(userID) {
		return nil, consts.ErrAlreadyInClass
	}

	err = s.Transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.ClassMapper.AddMembers(ctx, classID, userID); err != nil {
			return err
		}
		return s.UserMapper.AddClass(ctx, classID, userID)
	})
	if err != nil {
		log.CtxError(ctx, "加入班级失败, classId=%s, userId=%s, err=%v", classID, userID, err)
		return nil, err
	}

	joined := class.WithMembers(*c, userID)
	return toClassDTO(&joined, nil), nil
}

// CreateClass 创建班级, 创建者成为唯一的拥有者
func (s *ClassService) CreateClass(ctx context.Context, req *classroom.CreateClassReq) (*classroom.Class, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	userID := u.ID.Hex()

	for i := 0; i < consts.AccessTokenAttempts; i++ {
		accessToken, err := s.generateAccessToken(ctx)
		if err != nil {
			return nil, err
		}
		c := &class.Class{
			Title:       req.Title,
			Description: req.Description,
			AccessToken: accessToken,
			Owners:      []string{userID},
			Members:     []string{},
			Lessons:     []string{},
		}
		err = s.Transactor.Transaction(ctx, func(ctx context.Context) error {
			if err := s.ClassMapper.Insert(ctx, c); err != nil {
				return err
			}
			return s.UserMapper.AddClass(ctx, c.ID.Hex(), userID)
		})
		switch {
		case err == nil:
			return toClassDTO(c, nil), nil
		case errors.Is(err, class.ErrDuplicateAccessToken):
			log.CtxInfo(ctx, "班级邀请码冲突, 重新生成")
			continue
		default:
			log.CtxError(ctx, "创建班级失败: %v", err)
			return nil, consts.ErrCreateClass
		}
	}
	return nil, consts.ErrAccessToken
}

// RemoveMember 将成员移出班级
func (s *ClassService) RemoveMember(ctx context.Context, req *classroom.RemoveMemberReq) (*classroom.Class, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err = guard.RequireValidID(req.ClassId, consts.ErrWrongPath.Error()); err != nil {
		return nil, err
	}
	c, err := loadClass(ctx, s.ClassMapper, req.ClassId)
	if err != nil {
		return nil, err
	}
	if s.Config != nil && s.Config.Policy.OwnerOnlyModeration {
		if err = guard.RequireOwner(c.Owners, u.ID.Hex(), consts.ErrRemoveMember.Error()); err != nil {
			return nil, err
		}
	}
	if !c.IsMember(req.MemberId) {
		return nil, consts.ErrUserNotFound
	}
	member, err := s.UserMapper.FindOne(ctx, req.MemberId)
	if err != nil && !errors.Is(err, consts.ErrNotFound) && !errors.Is(err, consts.ErrInvalidObjectId) {
		return nil, err
	}
	if member == nil {
		return nil, consts.ErrUserNotFound
	}

	classID := c.ID.Hex()
	memberID := member.ID.Hex()
	err = s.Transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.UserMapper.RemoveClass(ctx, classID, memberID); err != nil {
			return err
		}
		return s.ClassMapper.RemoveMembers(ctx, classID, memberID)
	})
	if err != nil {
		log.CtxError(ctx, "移除成员失败, classId=%s, memberId=%s, err=%v", classID, memberID, err)
		return nil, err
	}

	s.Notifier.Notify(ctx, fmt.Sprintf("You were removed from class %q", c.Title), memberID)
	left := class.WithoutMembers(*c, memberID)
	return toClassDTO(&left, nil), nil
}

// RemoveClass 删除班级, 并清理所有用户对该班级的引用
func (s *ClassService) RemoveClass(ctx context.Context, req *classroom.ClassIdReq) (*basic.Response, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err = guard.RequireValidID(req.ClassId, consts.ErrWrongPath.Error()); err != nil {
		return nil, err
	}
	c, err := loadClass(ctx, s.ClassMapper, req.ClassId)
	if err != nil {
		return nil, err
	}
	userID := u.ID.Hex()
	if err = guard.RequireOwner(c.Owners, userID, consts.ErrRemoveClass.Error()); err != nil {
		return nil, err
	}

	classID := c.ID.Hex()
	err = s.Transactor.Transaction(ctx, func(ctx context.Context) error {
		n, err := s.UserMapper.RemoveClassFromAll(ctx, classID)
		if err != nil {
			return err
		}
		log.CtxInfo(ctx, "班级 %s 已从 %d 个用户中移除", classID, n)
		return s.ClassMapper.Delete(ctx, classID)
	})
	if err != nil {
		log.CtxError(ctx, "删除班级失败, classId=%s, err=%v", classID, err)
		return nil, err
	}

	others := lo.Without(c.Participants(), userID)
	s.Notifier.Notify(ctx, fmt.Sprintf("Class %q was removed", c.Title), others...)
	return &basic.Response{Code: 0, Msg: "success"}, nil
}

// ClassInfo 获取班级详情, 仅拥有者和成员可见
func (s *ClassService) ClassInfo(ctx context.Context, req *classroom.ClassIdReq) (*classroom.ClassInfoResp, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err = guard.RequireValidID(req.ClassId, consts.ErrWrongPath.Error()); err != nil {
		return nil, err
	}
	c, err := loadClass(ctx, s.ClassMapper, req.ClassId)
	if err != nil {
		return nil, err
	}
	userID := u.ID.Hex()
	if err = guard.RequireMember(c.Owners, c.Members, userID, consts.ErrOpenClass.Error()); err != nil {
		return nil, err
	}

	lessons, err := s.LessonMapper.FindByIDs(ctx, c.Lessons)
	if err != nil {
		return nil, err
	}
	users, err := s.UserMapper.FindMany(ctx, c.Participants())
	if err != nil {
		return nil, err
	}

	return &classroom.ClassInfoResp{
		Class:   toClassDTO(c, lessons),
		Owners:  toUserBriefs(c.Owners, users),
		Members: toUserBriefs(c.Members, users),
		Owner:   c.IsOwner(userID),
	}, nil
}

// UpdateClassInfo 更新班级标题和描述
func (s *ClassService) UpdateClassInfo(ctx context.Context, req *classroom.UpdateClassReq) (*classroom.Class, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err = guard.RequireValidID(req.ClassId, consts.ErrWrongPath.Error()); err != nil {
		return nil, err
	}
	c, err := loadClass(ctx, s.ClassMapper, req.ClassId)
	if err != nil {
		return nil, err
	}
	if err = guard.RequireOwner(c.Owners, u.ID.Hex(), consts.ErrUpdateClass.Error()); err != nil {
		return nil, err
	}

	updated, err := s.ClassMapper.UpdateInfo(ctx, req.ClassId, req.Title, req.Description)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrClassNotFound
	} else if err != nil {
		log.CtxError(ctx, "更新班级信息失败: %v", err)
		return nil, consts.ErrUpdate
	}
	return toClassDTO(updated, nil), nil
}

// AddOwner 将用户提升为拥有者, 原有成员身份随之取消
func (s *ClassService) AddOwner(ctx context.Context, req *classroom.UpdateOwnersReq) (*classroom.Class, error) {
	c, targets, err := s.prepareOwnerChange(ctx, req)
	if err != nil {
		return nil, err
	}

	users, err := s.UserMapper.FindMany(ctx, targets)
	if err != nil {
		return nil, err
	}
	if len(users) != len(targets) {
		return nil, consts.ErrUserNotFound
	}

	added := lo.Without(targets, c.Owners...)
	if len(added) == 0 {
		return toClassDTO(c, nil), nil
	}
	classID := c.ID.Hex()
	err = s.Transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.ClassMapper.AddOwners(ctx, classID, added...); err != nil {
			return err
		}
		return s.UserMapper.AddClass(ctx, classID, added...)
	})
	if err != nil {
		log.CtxError(ctx, "添加拥有者失败, classId=%s, err=%v", classID, err)
		return nil, err
	}

	s.Notifier.Notify(ctx, fmt.Sprintf("You are now an owner of class %q", c.Title), added...)
	promoted := class.WithOwners(*c, added...)
	return toClassDTO(&promoted, nil), nil
}

// RemoveOwner 取消拥有者身份, 被移除者同时离开班级; 班级至少保留一个拥有者
func (s *ClassService) RemoveOwner(ctx context.Context, req *classroom.UpdateOwnersReq) (*classroom.Class, error) {
	c, targets, err := s.prepareOwnerChange(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, id := range targets {
		if !c.IsOwner(id) {
			return nil, consts.ErrUserNotFound
		}
	}
	if len(lo.Without(c.Owners, targets...)) == 0 {
		return nil, consts.ErrLastOwner
	}

	classID := c.ID.Hex()
	err = s.Transactor.Transaction(ctx, func(ctx context.Context) error {
		if err := s.ClassMapper.RemoveOwners(ctx, classID, targets...); err != nil {
			return err
		}
		return s.UserMapper.RemoveClass(ctx, classID, targets...)
	})
	if err != nil {
		log.CtxError(ctx, "移除拥有者失败, classId=%s, err=%v", classID, err)
		return nil, err
	}

	self := adaptor.ExtractUserMeta(ctx).GetUserId()
	s.Notifier.Notify(ctx, fmt.Sprintf("You are no longer an owner of class %q", c.Title), lo.Without(targets, self)...)
	demoted := class.WithoutOwners(*c, targets...)
	return toClassDTO(&demoted, nil), nil
}

// prepareOwnerChange 拥有者变更的公共校验: 路径、班级存在、调用方为拥有者、目标 id 合法
func (s *ClassService) prepareOwnerChange(ctx context.Context, req *classroom.UpdateOwnersReq) (*class.Class, []string, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err = guard.RequireValidID(req.ClassId, consts.ErrWrongPath.Error()); err != nil {
		return nil, nil, err
	}
	c, err := loadClass(ctx, s.ClassMapper, req.ClassId)
	if err != nil {
		return nil, nil, err
	}
	if err = guard.RequireOwner(c.Owners, u.ID.Hex(), consts.ErrManageOwners.Error()); err != nil {
		return nil, nil, err
	}
	targets := lo.Uniq(req.Owners)
	if len(targets) == 0 {
		return nil, nil, consts.ErrInvalidParams
	}
	for _, id := range targets {
		if err = guard.RequireValidID(id, "Wrong user id"); err != nil {
			return nil, nil, err
		}
	}
	return c, targets, nil
}

// currentUser 获取调用方的用户文档
func (s *ClassService) currentUser(ctx context.Context) (*user.User, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	if meta.GetUserId() == "" {
		return nil, consts.ErrNotAuthentication
	}
	u, err := s.UserMapper.FindOne(ctx, meta.GetUserId())
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, consts.ErrNotFound), errors.Is(err, consts.ErrInvalidObjectId):
		return nil, consts.ErrNotAuthentication
	default:
		log.CtxError(ctx, "获取用户信息失败: %v", err)
		return nil, err
	}
}

// generateAccessToken 生成未被占用的邀请码
func (s *ClassService) generateAccessToken(ctx context.Context) (string, error) {
	for i := 0; i < consts.AccessTokenAttempts; i++ {
		code := make([]byte, consts.AccessTokenLength)
		for j := range code {
			idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(consts.AccessTokenCharset))))
			if err != nil {
				return "", err
			}
			code[j] = consts.AccessTokenCharset[idx.Int64()]
		}
		_, err := s.ClassMapper.FindOneByAccessToken(ctx, string(code))
		if errors.Is(err, consts.ErrNotFound) {
			return string(code), nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", consts.ErrAccessToken
}
