package user

import (
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/util/log"
	"context"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "user"
)

type IMongoMapper interface {
	Insert(ctx context.Context, u *User) error
	FindOne(ctx context.Context, id string) (*User, error)
	FindOneByLogin(ctx context.Context, login string) (*User, error)
	FindMany(ctx context.Context, ids []string) ([]*User, error)
	AddClass(ctx context.Context, classID string, userIDs ...string) error
	RemoveClass(ctx context.Context, classID string, userIDs ...string) error
	RemoveClassFromAll(ctx context.Context, classID string) (int64, error)
	PushNotification(ctx context.Context, userID string, n *Notification) error
	RemoveNotifications(ctx context.Context, userID string, ids []string) error
	SetRefreshTokenHash(ctx context.Context, userID, hash string) error
	SwapRefreshTokenHash(ctx context.Context, userID, oldHash, newHash string) (bool, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewUserMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, u *User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
		u.CreateTime = time.Now()
		u.UpdateTime = u.CreateTime
	}
	if u.Classes == nil {
		u.Classes = []string{}
	}
	if u.Notifications == nil {
		u.Notifications = []*Notification{}
	}
	_, err := m.conn.InsertOneNoCache(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return consts.ErrRepeatedSignUp
	}
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var u User
	err = m.conn.FindOneNoCache(ctx, &u, bson.M{consts.ID: oid})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindOneByLogin(ctx context.Context, login string) (*User, error) {
	var u User
	err := m.conn.FindOneNoCache(ctx, &u, bson.M{consts.Login: login})
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

// FindMany 按id批量查询, 不存在的id直接忽略
func (m *MongoMapper) FindMany(ctx context.Context, ids []string) ([]*User, error) {
	oids, err := toObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	users := make([]*User, 0, len(oids))
	if len(oids) == 0 {
		return users, nil
	}
	err = m.conn.Find(ctx, &users, bson.M{consts.ID: bson.M{consts.In: oids}}, &options.FindOptions{
		Projection: bson.M{"password": 0, consts.RefreshTokenHash: 0, consts.Notifications: 0},
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MongoMapper) AddClass(ctx context.Context, classID string, userIDs ...string) error {
	return m.updateMany(ctx, userIDs, bson.M{consts.AddToSet: bson.M{consts.Classes: classID}})
}

func (m *MongoMapper) RemoveClass(ctx context.Context, classID string, userIDs ...string) error {
	return m.updateMany(ctx, userIDs, bson.M{consts.Pull: bson.M{consts.Classes: classID}})
}

// RemoveClassFromAll 从所有引用该班级的用户中移除班级, 返回受影响的用户数
func (m *MongoMapper) RemoveClassFromAll(ctx context.Context, classID string) (int64, error) {
	res, err := m.conn.UpdateManyNoCache(ctx, bson.M{consts.Classes: classID}, bson.M{
		consts.Pull: bson.M{consts.Classes: classID},
		consts.Set:  bson.M{consts.UpdateTime: time.Now()},
	})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (m *MongoMapper) PushNotification(ctx context.Context, userID string, n *Notification) error {
	return m.updateMany(ctx, []string{userID}, bson.M{consts.Push: bson.M{consts.Notifications: n}})
}

func (m *MongoMapper) RemoveNotifications(ctx context.Context, userID string, ids []string) error {
	return m.updateMany(ctx, []string{userID}, bson.M{consts.Pull: bson.M{
		consts.Notifications: bson.M{"id": bson.M{consts.In: ids}},
	}})
}

func (m *MongoMapper) SetRefreshTokenHash(ctx context.Context, userID, hash string) error {
	return m.updateMany(ctx, []string{userID}, bson.M{consts.Set: bson.M{consts.RefreshTokenHash: hash}})
}

// SwapRefreshTokenHash 仅当存储的哈希仍为 oldHash 时才替换, 返回是否替换成功
func (m *MongoMapper) SwapRefreshTokenHash(ctx context.Context, userID, oldHash, newHash string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, consts.ErrInvalidObjectId
	}
	if oldHash == "" {
		return false, nil
	}
	res, err := m.conn.UpdateOneNoCache(ctx, bson.M{consts.ID: oid, consts.RefreshTokenHash: oldHash}, bson.M{
		consts.Set: bson.M{consts.RefreshTokenHash: newHash, consts.UpdateTime: time.Now()},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (m *MongoMapper) updateMany(ctx context.Context, ids []string, update bson.M) error {
	oids, err := toObjectIDs(ids)
	if err != nil {
		return err
	}
	if len(oids) == 0 {
		return nil
	}
	if _, ok := update[consts.Set]; !ok {
		update[consts.Set] = bson.M{consts.UpdateTime: time.Now()}
	}
	_, err = m.conn.UpdateManyNoCache(ctx, bson.M{consts.ID: bson.M{consts.In: oids}}, update)
	return err
}

func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, consts.ErrInvalidObjectId
		}
		oids = append(oids, oid)
	}
	return oids, nil
}
