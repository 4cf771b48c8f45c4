package service

import (
	"classroom/biz/adaptor"
	"classroom/biz/application/dto/basic"
	"classroom/biz/application/dto/classroom"
	"classroom/biz/infrastructure/cache"
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/credential"
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/token"
	"classroom/biz/infrastructure/util/log"
	"context"
	"errors"
	"time"

	"github.com/google/wire"
)

type IAuthService interface {
	SignUp(ctx context.Context, req *classroom.SignUpReq) (*classroom.SignUpResp, error)
	SignIn(ctx context.Context, req *classroom.SignInReq) (*classroom.TokenResp, error)
	Logout(ctx context.Context) (*basic.Response, error)
	RefreshTokens(ctx context.Context) (*classroom.TokenResp, error)
	DeleteNotifications(ctx context.Context, req *classroom.DeleteNotificationsReq) (*classroom.DeleteNotificationsResp, error)
	Authenticate(ctx context.Context, raw string, kind token.Kind) (*basic.UserMeta, error)
}

// AuthService 会话管理: 签发、轮换、吊销令牌
//
// 每个用户至多一个有效的刷新令牌, 库中只保存其摘要;
// 轮换通过对摘要的比较并交换完成, 并发刷新时只有一个请求能成功.
type AuthService struct {
	UserMapper   user.IMongoMapper
	SessionCache cache.ISessionCacheMapper
	TokenManager *token.Manager
	Verifier     credential.Verifier
}

var AuthServiceSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),
)

// SignUp 注册
func (s *AuthService) SignUp(ctx context.Context, req *classroom.SignUpReq) (*classroom.SignUpResp, error) {
	_, err := s.UserMapper.FindOneByLogin(ctx, req.Login)
	switch {
	case err == nil:
		return nil, consts.ErrRepeatedSignUp
	case !errors.Is(err, consts.ErrNotFound):
		log.CtxError(ctx, "查询用户失败: %v", err)
		return nil, err
	}

	hash, err := s.Verifier.Hash(ctx, req.Password)
	if err != nil {
		log.CtxError(ctx, "口令摘要失败: %v", err)
		return nil, consts.ErrSignUp
	}
	u := &user.User{
		Login:    req.Login,
		Password: hash,
		Name:     req.Name,
		Surname:  req.Surname,
	}
	if err = s.UserMapper.Insert(ctx, u); err != nil {
		if errors.Is(err, consts.ErrConflict) {
			return nil, consts.ErrRepeatedSignUp
		}
		log.CtxError(ctx, "注册失败: %v", err)
		return nil, consts.ErrSignUp
	}

	return &classroom.SignUpResp{
		Id:      u.ID.Hex(),
		Login:   u.Login,
		Name:    u.Name,
		Surname: u.Surname,
	}, nil
}

// SignIn 登录, 签发新的令牌对, 旧的刷新令牌随之作废
func (s *AuthService) SignIn(ctx context.Context, req *classroom.SignInReq) (*classroom.TokenResp, error) {
	u, err := s.UserMapper.FindOneByLogin(ctx, req.Login)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrSignIn
	} else if err != nil {
		log.CtxError(ctx, "查询用户失败: %v", err)
		return nil, err
	}
	if err = s.Verifier.Verify(ctx, u.Login, req.Password, u.Password); err != nil {
		return nil, consts.ErrSignIn
	}

	userID := u.ID.Hex()
	pair, err := s.TokenManager.Issue(userID)
	if err != nil {
		log.CtxError(ctx, "签发令牌失败: %v", err)
		return nil, err
	}
	if err = s.UserMapper.SetRefreshTokenHash(ctx, userID, token.Hash(pair.RefreshToken)); err != nil {
		log.CtxError(ctx, "保存刷新令牌失败: %v", err)
		return nil, err
	}
	return toTokenResp(pair), nil
}

// Logout 作废刷新令牌, 并使此前签发的访问令牌失效
func (s *AuthService) Logout(ctx context.Context) (*basic.Response, error) {
	userID := adaptor.ExtractUserMeta(ctx).GetUserId()
	if userID == "" {
		return nil, consts.ErrNotAuthentication
	}
	if err := s.UserMapper.SetRefreshTokenHash(ctx, userID, ""); err != nil {
		log.CtxError(ctx, "清除刷新令牌失败: %v", err)
		return nil, err
	}
	if err := s.SessionCache.Revoke(ctx, userID, time.Now()); err != nil {
		log.CtxError(ctx, "记录登出时间失败: %v", err)
		return nil, err
	}
	return &basic.Response{Code: 0, Msg: "success"}, nil
}

// RefreshTokens 用当前有效的刷新令牌换取新的令牌对
func (s *AuthService) RefreshTokens(ctx context.Context) (*classroom.TokenResp, error) {
	meta := adaptor.ExtractUserMeta(ctx)
	userID := meta.GetUserId()
	presented := meta.GetToken()
	if userID == "" || presented == "" {
		return nil, consts.ErrRefreshToken
	}

	pair, err := s.TokenManager.Issue(userID)
	if err != nil {
		log.CtxError(ctx, "签发令牌失败: %v", err)
		return nil, err
	}
	swapped, err := s.UserMapper.SwapRefreshTokenHash(ctx, userID, token.Hash(presented), token.Hash(pair.RefreshToken))
	if err != nil {
		log.CtxError(ctx, "轮换刷新令牌失败: %v", err)
		return nil, err
	}
	if !swapped {
		return nil, consts.ErrRefreshToken
	}
	return toTokenResp(pair), nil
}

// DeleteNotifications 删除指定通知, 返回剩余通知
func (s *AuthService) DeleteNotifications(ctx context.Context, req *classroom.DeleteNotificationsReq) (*classroom.DeleteNotificationsResp, error) {
	userID := adaptor.ExtractUserMeta(ctx).GetUserId()
	if userID == "" {
		return nil, consts.ErrNotAuthentication
	}
	if len(req.Ids) > 0 {
		if err := s.UserMapper.RemoveNotifications(ctx, userID, req.Ids); err != nil {
			log.CtxError(ctx, "删除通知失败: %v", err)
			return nil, consts.ErrUpdate
		}
	}
	u, err := s.UserMapper.FindOne(ctx, userID)
	if err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrNotAuthentication
		}
		return nil, err
	}
	return &classroom.DeleteNotificationsResp{Notifications: toNotificationDTOs(u.Notifications)}, nil
}

// Authenticate 校验令牌, 访问令牌还需晚于最近一次登出
func (s *AuthService) Authenticate(ctx context.Context, raw string, kind token.Kind) (*basic.UserMeta, error) {
	claims, err := s.TokenManager.Parse(raw, kind)
	if err != nil {
		return nil, err
	}
	if kind == token.KindAccess {
		revokedAt, ok, err := s.SessionCache.RevokedAt(ctx, claims.UserID)
		if err != nil {
			log.CtxError(ctx, "查询登出时间失败: %v", err)
			return nil, err
		}
		if ok && !claims.IssuedAt.After(revokedAt) {
			return nil, consts.ErrSessionRevoked
		}
	}
	meta := &basic.UserMeta{
		UserId:   claims.UserID,
		TokenId:  claims.ID,
		IssuedAt: claims.IssuedAt,
	}
	if kind == token.KindRefresh {
		meta.Token = raw
	}
	return meta, nil
}

func toTokenResp(pair *token.Pair) *classroom.TokenResp {
	return &classroom.TokenResp{
		AccessToken:   pair.AccessToken,
		AccessExpire:  pair.AccessExpire,
		RefreshToken:  pair.RefreshToken,
		RefreshExpire: pair.RefreshExpire,
	}
}
