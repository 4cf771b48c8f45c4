package consts

// 数据库相关
const (
	ID               = "_id"
	Login            = "login"
	Classes          = "classes"
	Notifications    = "notifications"
	RefreshTokenHash = "refresh_token_hash"
	Owners           = "owners"
	Members          = "members"
	Lessons          = "lessons"
	AccessToken      = "access_token"
	ClassID          = "class_id"
	UpdateTime       = "update_time"
	In               = "$in"
	Set              = "$set"
	Pull             = "$pull"
	Push             = "$push"
	AddToSet         = "$addToSet"
	Each             = "$each"
)

// http
const (
	Post            = "POST"
	ContentTypeJson = "application/json"
	CharSetUTF8     = "UTF-8"
	Authorization   = "Authorization"
	BearerPrefix    = "Bearer "
)

// 默认值
const (
	AccessTokenLength   = 10
	AccessTokenAttempts = 5
	AccessTokenCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// 凭证校验方式
const (
	CredentialLocal    = "local"
	CredentialPlatform = "platform"
)
