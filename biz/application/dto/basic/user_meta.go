package basic

import "time"

// UserMeta 已认证调用方的身份, 由令牌解析得到
type UserMeta struct {
	UserId   string    `json:"userId"`
	TokenId  string    `json:"tokenId"`
	IssuedAt time.Time `json:"issuedAt"`
	// Token 原始令牌, 仅刷新接口需要
	Token string `json:"-"`
}

func (x *UserMeta) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

func (x *UserMeta) GetToken() string {
	if x != nil {
		return x.Token
	}
	return ""
}

type Response struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}
