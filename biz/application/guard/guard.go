// Package guard 权限校验, 全部为无副作用的纯函数, 必须在任何写操作之前执行
package guard

import (
	"classroom/biz/infrastructure/consts"
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequireValidID id 不符合存储的 ObjectId 格式时返回 BadRequest
func RequireValidID(id string, msg string) error {
	if !primitive.IsValidObjectID(id) {
		return consts.ErrBadRequest.WithMsg(msg)
	}
	return nil
}

// RequireNonEmpty 实体未查到时返回 NotFound
func RequireNonEmpty[T any](entity *T, msg string) error {
	if entity == nil {
		return consts.ErrNotFound.WithMsg(msg)
	}
	return nil
}

// RequireMember 拥有者或成员均可通过
func RequireMember(owners, members []string, userID string, msg string) error {
	if userID == "" || !(slices.Contains(owners, userID) || slices.Contains(members, userID)) {
		return consts.ErrForbidden.WithMsg(msg)
	}
	return nil
}

// RequireOwner 仅拥有者可通过
func RequireOwner(owners []string, userID string, msg string) error {
	if userID == "" || !slices.Contains(owners, userID) {
		return consts.ErrForbidden.WithMsg(msg)
	}
	return nil
}
