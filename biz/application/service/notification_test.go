package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierPushesToEveryRecipient(t *testing.T) {
	f := newFixture(t)
	a := f.addUser(t, "alice")
	b := f.addUser(t, "bob")
	n := &Notifier{UserMapper: fakeUserMapper{f.store}}

	ctx, cancel := context.WithCancel(context.Background())
	n.Notify(ctx, "hello", a, b)
	// 请求结束后通知仍会送达
	cancel()

	require.Eventually(t, func() bool {
		return len(f.user(t, a).Notifications) == 1 && len(f.user(t, b).Notifications) == 1
	}, time.Second, 10*time.Millisecond)
	got := f.user(t, a).Notifications[0]
	assert.Equal(t, "hello", got.Text)
	assert.NotEmpty(t, got.ID)
}
