package service

import (
	"classroom/biz/adaptor"
	"classroom/biz/application/dto/classroom"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/token"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signUp(t *testing.T, f *fixture, login string) string {
	t.Helper()
	resp, err := f.auth.SignUp(context.Background(), &classroom.SignUpReq{
		Login: login, Password: "secret-" + login, Name: "Ann", Surname: "Lee",
	})
	require.NoError(t, err)
	return resp.Id
}

func signIn(t *testing.T, f *fixture, login string) *classroom.TokenResp {
	t.Helper()
	resp, err := f.auth.SignIn(context.Background(), &classroom.SignInReq{Login: login, Password: "secret-" + login})
	require.NoError(t, err)
	return resp
}

func authed(t *testing.T, f *fixture, raw string, kind token.Kind) context.Context {
	t.Helper()
	meta, err := f.auth.Authenticate(context.Background(), raw, kind)
	require.NoError(t, err)
	return adaptor.InjectUserMeta(context.Background(), meta)
}

func TestSignUp(t *testing.T) {
	f := newFixture(t)
	id := signUp(t, f, "ann")
	u := f.user(t, id)
	assert.Equal(t, "ann", u.Login)
	assert.Equal(t, "pw:secret-ann", u.Password)
	assert.Empty(t, u.Classes)

	_, err := f.auth.SignUp(context.Background(), &classroom.SignUpReq{Login: "ann", Password: "x"})
	assert.Equal(t, consts.ErrRepeatedSignUp, err)
}

func TestSignIn(t *testing.T) {
	f := newFixture(t)
	id := signUp(t, f, "ann")

	_, err := f.auth.SignIn(context.Background(), &classroom.SignInReq{Login: "ann", Password: "wrong"})
	assert.Equal(t, consts.ErrSignIn, err)
	_, err = f.auth.SignIn(context.Background(), &classroom.SignInReq{Login: "bob", Password: "x"})
	assert.Equal(t, consts.ErrSignIn, err)

	pair := signIn(t, f, "ann")
	assert.Equal(t, token.Hash(pair.RefreshToken), f.user(t, id).RefreshTokenHash)

	ctx := authed(t, f, pair.AccessToken, token.KindAccess)
	assert.Equal(t, id, adaptor.ExtractUserMeta(ctx).GetUserId())
	assert.Empty(t, adaptor.ExtractUserMeta(ctx).GetToken())

	_, err = f.auth.Authenticate(context.Background(), pair.AccessToken, token.KindRefresh)
	assert.ErrorIs(t, err, consts.ErrUnauthorized)
}

func TestRefreshRotation(t *testing.T) {
	f := newFixture(t)
	id := signUp(t, f, "ann")
	first := signIn(t, f, "ann")

	second, err := f.auth.RefreshTokens(authed(t, f, first.RefreshToken, token.KindRefresh))
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, token.Hash(second.RefreshToken), f.user(t, id).RefreshTokenHash)

	// 已轮换的令牌不可再用
	_, err = f.auth.RefreshTokens(authed(t, f, first.RefreshToken, token.KindRefresh))
	assert.Equal(t, consts.ErrRefreshToken, err)

	_, err = f.auth.RefreshTokens(authed(t, f, second.RefreshToken, token.KindRefresh))
	require.NoError(t, err)
}

func TestConcurrentRefreshSingleWinner(t *testing.T) {
	f := newFixture(t)
	signUp(t, f, "ann")
	pair := signIn(t, f, "ann")
	ctx := authed(t, f, pair.RefreshToken, token.KindRefresh)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.auth.RefreshTokens(ctx); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	id := signUp(t, f, "ann")
	pair := signIn(t, f, "ann")

	_, err := f.auth.Logout(authed(t, f, pair.AccessToken, token.KindAccess))
	require.NoError(t, err)
	assert.Empty(t, f.user(t, id).RefreshTokenHash)

	_, err = f.auth.Authenticate(context.Background(), pair.AccessToken, token.KindAccess)
	assert.Equal(t, consts.ErrSessionRevoked, err)
	_, err = f.auth.RefreshTokens(authed(t, f, pair.RefreshToken, token.KindRefresh))
	assert.Equal(t, consts.ErrRefreshToken, err)

	time.Sleep(5 * time.Millisecond)
	again := signIn(t, f, "ann")
	_, err = f.auth.Authenticate(context.Background(), again.AccessToken, token.KindAccess)
	assert.NoError(t, err)

	_, err = f.auth.Logout(context.Background())
	assert.ErrorIs(t, err, consts.ErrUnauthorized)
}

func TestDeleteNotifications(t *testing.T) {
	f := newFixture(t)
	id := signUp(t, f, "ann")
	mapper := fakeUserMapper{f.store}
	for _, nid := range []string{"n1", "n2", "n3"} {
		require.NoError(t, mapper.PushNotification(context.Background(), id, &user.Notification{ID: nid, Text: nid}))
	}

	resp, err := f.auth.DeleteNotifications(as(id), &classroom.DeleteNotificationsReq{Ids: []string{"n1", "n3", "missing"}})
	require.NoError(t, err)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "n2", resp.Notifications[0].Id)
}
