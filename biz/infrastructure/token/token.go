package token

import (
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/consts"
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	claimUserID     = "userId"
	claimKind       = "typ"
	claimIssuedAtMs = "iatMs"
)

// Claims 解析后的令牌信息
type Claims struct {
	ID        string
	UserID    string
	Kind      Kind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Pair 一次签发的访问令牌和刷新令牌
type Pair struct {
	AccessToken   string `json:"accessToken"`
	AccessExpire  int64  `json:"accessExpire"`
	RefreshToken  string `json:"refreshToken"`
	RefreshExpire int64  `json:"refreshExpire"`
}

/*
生成 ECDSA 私钥: openssl ecparam -genkey -name prime256v1 -noout -out private_key.pem
从私钥中提取公钥: openssl ec -in private_key.pem -pubout -out public_key.pem
*/
type Manager struct {
	privateKey    *ecdsa.PrivateKey
	publicKey     *ecdsa.PublicKey
	accessExpire  time.Duration
	refreshExpire time.Duration
	now           func() time.Time
}

func NewManager(config *config.Config) (*Manager, error) {
	priv, err := jwt.ParseECPrivateKeyFromPEM([]byte(config.Auth.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("parse auth secret key: %w", err)
	}
	pub, err := jwt.ParseECPublicKeyFromPEM([]byte(config.Auth.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("parse auth public key: %w", err)
	}
	return &Manager{
		privateKey:    priv,
		publicKey:     pub,
		accessExpire:  time.Duration(config.Auth.AccessExpire) * time.Second,
		refreshExpire: time.Duration(config.Auth.RefreshExpire) * time.Second,
		now:           time.Now,
	}, nil
}

// NewManagerWithKey 直接使用已解析的密钥构造
func NewManagerWithKey(priv *ecdsa.PrivateKey, accessExpire, refreshExpire time.Duration) *Manager {
	return &Manager{
		privateKey:    priv,
		publicKey:     &priv.PublicKey,
		accessExpire:  accessExpire,
		refreshExpire: refreshExpire,
		now:           time.Now,
	}
}

// Issue 为用户签发一对新令牌
func (m *Manager) Issue(userID string) (*Pair, error) {
	now := m.now()
	access, accessExp, err := m.sign(userID, KindAccess, now, m.accessExpire)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := m.sign(userID, KindRefresh, now, m.refreshExpire)
	if err != nil {
		return nil, err
	}
	return &Pair{
		AccessToken:   access,
		AccessExpire:  accessExp,
		RefreshToken:  refresh,
		RefreshExpire: refreshExp,
	}, nil
}

// Parse 校验签名、有效期和令牌类型
func (m *Manager) Parse(tokenString string, kind Kind) (*Claims, error) {
	parser := jwt.Parser{ValidMethods: []string{jwt.SigningMethodES256.Alg()}}
	mc := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, mc, func(_ *jwt.Token) (any, error) {
		return m.publicKey, nil
	})
	if err != nil {
		return nil, consts.ErrUnauthorized.WithMsg(err.Error())
	}
	if !token.Valid {
		return nil, consts.ErrUnauthorized.WithMsg("token is not valid")
	}
	c := &Claims{
		ID:        cast.ToString(mc["jti"]),
		UserID:    cast.ToString(mc[claimUserID]),
		Kind:      Kind(cast.ToString(mc[claimKind])),
		IssuedAt:  time.UnixMilli(cast.ToInt64(mc[claimIssuedAtMs])),
		ExpiresAt: time.Unix(cast.ToInt64(mc["exp"]), 0),
	}
	if c.Kind != kind {
		return nil, consts.ErrUnauthorized.WithMsg(fmt.Sprintf("expect %s token", kind))
	}
	if c.UserID == "" {
		return nil, consts.ErrUnauthorized.WithMsg("token has no subject")
	}
	return c, nil
}

func (m *Manager) sign(userID string, kind Kind, now time.Time, expire time.Duration) (string, int64, error) {
	if expire <= 0 {
		return "", 0, errors.New("token lifetime must be positive")
	}
	exp := now.Add(expire).Unix()
	claims := jwt.MapClaims{
		"jti":           uuid.NewString(),
		"iat":           now.Unix(),
		"exp":           exp,
		claimIssuedAtMs: now.UnixMilli(),
		claimUserID:     userID,
		claimKind:       string(kind),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	s, err := token.SignedString(m.privateKey)
	if err != nil {
		return "", 0, err
	}
	return s, exp, nil
}

// Hash 刷新令牌只以摘要形式落库
func Hash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
