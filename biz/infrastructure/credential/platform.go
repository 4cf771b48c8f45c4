package credential

import (
	"classroom/biz/infrastructure/consts"
	"classroom/biz/infrastructure/util"
	"classroom/biz/infrastructure/util/log"
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

type platformSignInResp struct {
	UserId string `mapstructure:"userId"`
}

// PlatformVerifier 口令托管在中台, 本地不保存摘要
type PlatformVerifier struct {
	url    string
	client *util.HttpClient
}

func NewPlatformVerifier(url string) *PlatformVerifier {
	return &PlatformVerifier{
		url:    url,
		client: util.GetHttpClient(),
	}
}

func (v *PlatformVerifier) Hash(context.Context, string) (string, error) {
	return "", nil
}

func (v *PlatformVerifier) Verify(ctx context.Context, login, password, _ string) error {
	data, err := v.client.SignIn(ctx, v.url, login, password)
	if err != nil {
		log.CtxError(ctx, "中台登录失败: %v", err)
		return consts.ErrSignIn
	}
	if cast.ToInt(data["code"]) != 0 {
		return consts.ErrSignIn
	}
	dataMap, ok := data["data"].(map[string]any)
	if !ok {
		return consts.ErrSignIn
	}
	resp := new(platformSignInResp)
	if err := mapstructure.Decode(dataMap, resp); err != nil || resp.UserId == "" {
		return consts.ErrSignIn
	}
	return nil
}
