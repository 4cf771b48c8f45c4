package service

import (
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/util/log"
	"context"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/uuid"
	"github.com/google/wire"
)

// INotifier 向用户的通知列表追加消息, 尽力而为, 失败不影响调用方
type INotifier interface {
	Notify(ctx context.Context, text string, userIDs ...string)
}

type Notifier struct {
	UserMapper user.IMongoMapper
}

var NotifierSet = wire.NewSet(
	wire.Struct(new(Notifier), "*"),
	wire.Bind(new(INotifier), new(*Notifier)),
)

// Notify 异步写入, 请求结束后仍会继续执行
func (n *Notifier) Notify(ctx context.Context, text string, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	gopool.CtxGo(ctx, func() {
		now := time.Now()
		for _, id := range userIDs {
			err := n.UserMapper.PushNotification(ctx, id, &user.Notification{
				ID:         uuid.NewString(),
				Text:       text,
				CreateTime: now,
			})
			if err != nil {
				log.CtxError(ctx, "推送通知失败, userId=%s, err=%v", id, err)
			}
		}
	})
}
