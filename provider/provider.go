package provider

import (
	"classroom/biz/application/service"
	"classroom/biz/infrastructure/cache"
	"classroom/biz/infrastructure/config"
	"classroom/biz/infrastructure/credential"
	"classroom/biz/infrastructure/repository/class"
	"classroom/biz/infrastructure/repository/lesson"
	"classroom/biz/infrastructure/repository/mark"
	"classroom/biz/infrastructure/repository/tx"
	"classroom/biz/infrastructure/repository/user"
	"classroom/biz/infrastructure/token"

	"github.com/google/wire"
)

var provider *Provider

func Init() {
	var err error
	provider, err = NewProvider()
	if err != nil {
		panic(err)
	}
}

// Provider 提供controller依赖的对象
type Provider struct {
	Config           *config.Config
	AuthService      service.IAuthService
	ClassService     service.IClassService
	GradeBookService service.IGradeBookService
}

func Get() *Provider {
	return provider
}

var ApplicationSet = wire.NewSet(
	service.AuthServiceSet,
	service.ClassServiceSet,
	service.GradeBookServiceSet,
	service.NotifierSet,
)

var InfrastructureSet = wire.NewSet(
	config.NewConfig,
	user.NewMongoMapper,
	wire.Bind(new(user.IMongoMapper), new(*user.MongoMapper)),
	class.NewMongoMapper,
	wire.Bind(new(class.IMongoMapper), new(*class.MongoMapper)),
	lesson.NewMongoMapper,
	wire.Bind(new(lesson.IMongoMapper), new(*lesson.MongoMapper)),
	mark.NewMySQLMapperFromConfig,
	wire.Bind(new(mark.IMySQLMapper), new(*mark.MySQLMapper)),
	tx.NewMongoTransactor,
	wire.Bind(new(tx.Transactor), new(*tx.MongoTransactor)),
	cache.NewSessionCacheMapper,
	wire.Bind(new(cache.ISessionCacheMapper), new(*cache.SessionCacheMapper)),
	token.NewManager,
	credential.NewVerifier,
)

var AllProvider = wire.NewSet(
	ApplicationSet,
	InfrastructureSet,
)
