package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"net/http"
	"recipe-rise/app/server/apidocs"
	"recipe-rise/app/server/config"
	"recipe-rise/app/server/constants"
	"recipe-rise/app/server/handlers"
	"recipe-rise/app/server/middlewares"
	"recipe-rise/app/server/utils"
	"time"
)

func newEcho(cfg *config.Config, l *zap.Logger, handlerApp *handlers.App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = utils.JSONSerializer{}
	e.Validator = handlers.NewValidator()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogMethod:  true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("method", v.Method),
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)

			return nil
		},
	}))
	// 放在 Recover 外层，panic 也按 500 计数
	e.Use(middlewares.Metrics())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(constants.MediaMaxRequestBody))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.System.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	// 绑定 echo 服务
	handlers.RegisterHandlers(e, handlerApp)

	// 添加 API 文档和指标
	if !cfg.System.IsProd {
		if cfg.System.MetricsListen == "" {
			e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
		}

		if swg, err := apidocs.GetSwagger(); err != nil {
			l.Error("error initializing swagger", zap.Error(err))
		} else if docs, err := apidocs.Doc("/docs", swg); err != nil {
			l.Error("error initializing api docs", zap.Error(err))
		} else {
			e.Pre(docs)
		}
	}

	return e
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}
