package class

import (
	"slices"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Class struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	AccessToken string             `bson:"access_token" json:"accessToken"`
	Owners      []string           `bson:"owners" json:"owners"`
	Members     []string           `bson:"members" json:"members"`
	Lessons     []string           `bson:"lessons" json:"lessons"`
	CreateTime  time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime  time.Time          `bson:"update_time" json:"updateTime"`
}

func (c *Class) IsOwner(userID string) bool {
	return lo.Contains(c.Owners, userID)
}

func (c *Class) IsMember(userID string) bool {
	return lo.Contains(c.Members, userID)
}

// Participants 返回班级的全部拥有者和成员, 去重
func (c *Class) Participants() []string {
	return lo.Union(c.Owners, c.Members)
}

// 以下函数均返回新的 Class, 不修改入参

func WithMembers(c Class, userIDs ...string) Class {
	c.Members = lo.Union(c.Members, userIDs)
	return c
}

func WithoutMembers(c Class, userIDs ...string) Class {
	c.Members = lo.Without(slices.Clone(c.Members), userIDs...)
	return c
}

// WithOwners 提升为拥有者的用户同时从成员中移除
func WithOwners(c Class, userIDs ...string) Class {
	c.Owners = lo.Union(c.Owners, userIDs)
	c.Members = lo.Without(slices.Clone(c.Members), userIDs...)
	return c
}

func WithoutOwners(c Class, userIDs ...string) Class {
	c.Owners = lo.Without(slices.Clone(c.Owners), userIDs...)
	return c
}
