package main

import (
	"classroom/biz/infrastructure/util/log"
	"classroom/provider"

	"github.com/cloudwego/hertz/pkg/app/server"
	prometheus "github.com/hertz-contrib/monitor-prometheus"
	"github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
)

func main() {
	// 本地开发时从 .env 读取 CONFIG_PATH 等变量, 文件不存在则忽略
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file loaded: %v", err)
	}
	provider.Init()
	c := provider.Get().Config

	otel.SetTextMapPropagator(b3.New())
	tracer, cfg := tracing.NewServerTracer()
	h := server.New(
		server.WithHostPorts(c.ListenOn),
		server.WithTracer(prometheus.NewServerTracer(c.Prometheus.ListenOn, c.Prometheus.Path)),
		tracer,
	)
	h.Use(tracing.ServerMiddleware(cfg))

	customizedRegister(h)
	log.Info("server listen on %s", c.ListenOn)
	h.Spin()
}
