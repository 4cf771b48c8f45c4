package lesson

import (
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/util/log"
	"context"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "lesson"

type IMongoMapper interface {
	FindByIDs(ctx context.Context, ids []string) ([]*Lesson, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewLessonMongoMapper collection: %s", CollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, CollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

// FindByIDs 按给定顺序返回课时, 已被删除的课时跳过
func (m *MongoMapper) FindByIDs(ctx context.Context, ids []string) ([]*Lesson, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, consts.ErrInvalidObjectId
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return []*Lesson{}, nil
	}
	var found []*Lesson
	err := m.conn.Find(ctx, &found, bson.M{consts.ID: bson.M{consts.In: oids}}, &options.FindOptions{})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*Lesson, len(found))
	for _, l := range found {
		byID[l.ID.Hex()] = l
	}
	lessons := make([]*Lesson, 0, len(found))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			lessons = append(lessons, l)
		}
	}
	return lessons, nil
}
