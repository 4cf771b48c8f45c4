package class

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

const CollectionName = "class"

// ErrDuplicateAccessToken 插入时邀请码与已有班级冲突
var ErrDuplicateAccessToken = errors.New("duplicate class access token")

type IMongoMapper interface {
	Insert(ctx context.Context, c *Class) error
	FindOne(ctx context.Context, id string) (*Class, error)
	FindOneByAccessToken(ctx context.Context, accessToken string) (*Class, error)
	FindMany(ctx context.Context, ids []string) ([]*Class, error)
	UpdateInfo(ctx context.Context, id string, title, description *string) (*Class, error)
	AddMembers(ctx context.Context, id string, userIDs ...string) error
	RemoveMembers(ctx context.Context, id string, userIDs ...string) error
	AddOwners(ctx context.Context, id string, userIDs ...string) error
	RemoveOwners(ctx context.Context, id string, userIDs ...string) error
	Delete(ctx context.Context, id string) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewClassMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, class *Class) error {
	if class.ID.IsZero() {
		class.ID = primitive.NewObjectID()
		class.CreateTime = time.Now()
		class.UpdateTime = class.CreateTime
	}
	if class.Members == nil {
		class.Members = []string{}
	}
	if class.Lessons == nil {
		class.Lessons = []string{}
	}
	_, err := m.conn.InsertOneNoCache(ctx, class)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateAccessToken
	}
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	return m.findOne(ctx, bson.M{consts.ID: oid})
}

func (m *MongoMapper) FindOneByAccessToken(ctx context.Context, accessToken string) (*Class, error) {
	return m.findOne(ctx, bson.M{consts.AccessToken: accessToken})
}

func (m *MongoMapper) FindMany(ctx context.Context, ids []string) ([]*Class, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			// 用户文档中的脏引用不影响其它班级的展示
			log.Error("skip invalid class id: %s", id)
			continue
		}
		oids = append(oids, oid)
	}
	classes := make([]*Class, 0, len(oids))
	if len(oids) == 0 {
		return classes, nil
	}
	err := m.conn.Find(ctx, &classes, bson.M{consts.ID: bson.M{consts.In: oids}}, &options.FindOptions{
		Sort: bson.M{"create_time": -1},
	})
	if err != nil {
		return nil, err
	}
	return classes, nil
}

// UpdateInfo 部分更新标题和描述, nil 字段保持不变, 返回更新后的班级
func (m *MongoMapper) UpdateInfo(ctx context.Context, id string, title, description *string) (*Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	set := bson.M{consts.UpdateTime: time.Now()}
	if title != nil {
		set["title"] = *title
	}
	if description != nil {
		set["description"] = *description
	}
	var c Class
	err = m.conn.FindOneAndUpdateNoCache(ctx, &c, bson.M{consts.ID: oid}, bson.M{consts.Set: set},
		options.FindOneAndUpdate().SetReturnDocument(options.After))
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) AddMembers(ctx context.Context, id string, userIDs ...string) error {
	return m.updateByID(ctx, id, bson.M{consts.AddToSet: bson.M{consts.Members: bson.M{consts.Each: userIDs}}})
}

func (m *MongoMapper) RemoveMembers(ctx context.Context, id string, userIDs ...string) error {
	return m.updateByID(ctx, id, bson.M{consts.Pull: bson.M{consts.Members: bson.M{consts.In: userIDs}}})
}

// AddOwners 新拥有者同时从成员列表中移除
func (m *MongoMapper) AddOwners(ctx context.Context, id string, userIDs ...string) error {
	return m.updateByID(ctx, id, bson.M{
		consts.AddToSet: bson.M{consts.Owners: bson.M{consts.Each: userIDs}},
		consts.Pull:     bson.M{consts.Members: bson.M{consts.In: userIDs}},
	})
}

func (m *MongoMapper) RemoveOwners(ctx context.Context, id string, userIDs ...string) error {
	return m.updateByID(ctx, id, bson.M{consts.Pull: bson.M{consts.Owners: bson.M{consts.In: userIDs}}})
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: oid})
	return err
}

func (m *MongoMapper) findOne(ctx context.Context, filter bson.M) (*Class, error) {
	var c Class
	err := m.conn.FindOneNoCache(ctx, &c, filter)
	switch {
	case err == nil:
		return &c, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	update[consts.Set] = bson.M{consts.UpdateTime: time.Now()}
	res, err := m.conn.UpdateByIDNoCache(ctx, oid, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return consts.ErrNotFound
	}
	return nil
}
