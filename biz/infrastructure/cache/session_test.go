package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/redis/redistest"
)

func TestSessionCacheMapper(t *testing.T) {
	m := NewSessionCacheMapperWithRedis(redistest.CreateRedis(t), 60)
	ctx := context.Background()

	_, ok, err := m.RevokedAt(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.UnixMilli(1700000000123)
	require.NoError(t, m.Revoke(ctx, "u1", at))

	got, ok, err := m.RevokedAt(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, at.Equal(got))

	_, ok, err = m.RevokedAt(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, ok)
}
