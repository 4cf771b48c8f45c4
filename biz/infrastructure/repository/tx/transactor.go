package tx

import (
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/util/log"
	"context"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "classroom/repository/tx"

// Transactor 为跨文档写入提供统一的事务边界
type Transactor interface {
	// Transaction 在同一事务中执行 fn, fn 内的存储操作必须使用传入的 ctx
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type MongoTransactor struct {
	conn          *monc.Model
	transactional bool
}

func NewMongoTransactor(config *config.Config) *MongoTransactor {
	if !config.Mongo.Transactional {
		log.Info("mongo transactions disabled, membership writes are not atomic")
	}
	// 会话属于客户端, 任选同库的集合即可
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, user.CollectionName, config.Cache)
	return &MongoTransactor{
		conn:          conn,
		transactional: config.Mongo.Transactional,
	}
}

func (t *MongoTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "mongo.transaction", trace.WithAttributes(
		attribute.Bool("mongo.transactional", t.transactional),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if !t.transactional {
		if err = fn(ctx); err != nil {
			log.CtxError(ctx, "non-transactional write failed, documents may be inconsistent: %v", err)
		}
		return err
	}

	sess, err := t.conn.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}
