package credential

import (
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/consts"
	"context"
)

// Verifier 口令的存储与校验, 具体算法对业务透明
type Verifier interface {
	// Hash 返回需要落库的口令摘要, 返回空串表示口令不在本地保存
	Hash(ctx context.Context, password string) (string, error)
	// Verify 校验失败时返回 consts.ErrSignIn
	Verify(ctx context.Context, login, password, storedHash string) error
}

// NewVerifier 按配置选择本地 bcrypt 或中台校验
func NewVerifier(config *config.Config) Verifier {
	if config.Auth.Credential == consts.CredentialPlatform {
		return NewPlatformVerifier(config.Api.PlatformURL)
	}
	return NewBcryptVerifier(config.Auth.BcryptCost)
}
