package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Login            string             `bson:"login" json:"login"`
	Password         string             `bson:"password,omitempty" json:"-"`
	Name             string             `bson:"name" json:"name"`
	Surname          string             `bson:"surname" json:"surname"`
	Classes          []string           `bson:"classes" json:"classes"`
	Notifications    []*Notification    `bson:"notifications" json:"notifications"`
	RefreshTokenHash string             `bson:"refresh_token_hash,omitempty" json:"-"`
	CreateTime       time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime       time.Time          `bson:"update_time" json:"updateTime"`
}

type Notification struct {
	ID         string    `bson:"id" json:"id"`
	Text       string    `bson:"text" json:"text"`
	CreateTime time.Time `bson:"create_time" json:"createTime"`
}

// HasClass 判断用户的班级集合中是否包含该班级
func (u *User) HasClass(classID string) bool {
	for _, c := range u.Classes {
		if c == classID {
			return true
		}
	}
	return false
}
