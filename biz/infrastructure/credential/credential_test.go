package credential

import (
	"classroom/biz/infrastructure/consts"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier(t *testing.T) {
	v := NewBcryptVerifier(bcrypt.MinCost)
	ctx := context.Background()

	h, err := v.Hash(ctx, "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", h)

	assert.NoError(t, v.Verify(ctx, "alice", "secret", h))
	assert.ErrorIs(t, v.Verify(ctx, "alice", "wrong", h), consts.ErrSignIn)
	assert.ErrorIs(t, v.Verify(ctx, "alice", "secret", ""), consts.ErrSignIn)
}

func TestPlatformVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "/sts/sign_in", r.URL.Path)
		if body["password"] == "secret" {
			_, _ = w.Write([]byte(`{"code":0,"data":{"userId":"abc"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"code":1002,"msg":"bad credentials"}`))
	}))
	defer srv.Close()

	v := NewPlatformVerifier(srv.URL)
	ctx := context.Background()

	h, err := v.Hash(ctx, "secret")
	require.NoError(t, err)
	assert.Empty(t, h)

	assert.NoError(t, v.Verify(ctx, "alice", "secret", ""))
	assert.ErrorIs(t, v.Verify(ctx, "alice", "wrong", ""), consts.ErrSignIn)
}
