package classroom

import "time"

type SignUpReq struct {
	Login    string `json:"login" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>=6"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

// LogValue 日志中隐藏口令
func (x *SignUpReq) LogValue() any {
	if x == nil {
		return nil
	}
	cp := *x
	cp.Password = redact(cp.Password)
	return &cp
}

type SignUpResp struct {
	Id      string `json:"id"`
	Login   string `json:"login"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type SignInReq struct {
	Login    string `json:"login" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>0"`
}

// LogValue 日志中隐藏口令
func (x *SignInReq) LogValue() any {
	if x == nil {
		return nil
	}
	cp := *x
	cp.Password = redact(cp.Password)
	return &cp
}

type TokenResp struct {
	AccessToken   string `json:"accessToken"`
	AccessExpire  int64  `json:"accessExpire"`
	RefreshToken  string `json:"refreshToken"`
	RefreshExpire int64  `json:"refreshExpire"`
}

// LogValue 日志中只保留有效期, 令牌本身不落日志
func (x *TokenResp) LogValue() any {
	if x == nil {
		return nil
	}
	cp := *x
	cp.AccessToken = redact(cp.AccessToken)
	cp.RefreshToken = redact(cp.RefreshToken)
	return &cp
}

type Notification struct {
	Id         string    `json:"id"`
	Text       string    `json:"text"`
	CreateTime time.Time `json:"createTime"`
}

type DeleteNotificationsReq struct {
	Ids []string `json:"ids"`
}

type DeleteNotificationsResp struct {
	Notifications []*Notification `json:"notifications"`
}

const redacted = "******"

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}
