package main

import (
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	"recipe-rise/app/server/cache"
	"recipe-rise/app/server/handlers"
	"recipe-rise/app/server/inits"
	"recipe-rise/app/server/jwt"
	"recipe-rise/app/server/store"
	"syscall"
	"time"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd, "server")
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接池
	db, err := inits.DB(cfg.System.DBConnectionString, inits.DBOptions{
		MaxOpenConns:    cfg.System.DBMaxOpenConns,
		MaxIdleConns:    cfg.System.DBMaxIdleConns,
		ConnMaxLifetime: cfg.System.DBConnMaxLifetime,
		Debug:           !cfg.System.IsProd,
	})
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey, cfg.Security.SessionTTL)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 初始化媒体服务
	m, err := inits.Media(cfg.Media)
	if err != nil {
		l.Fatal("error initializing media provider", zap.Error(err))
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, store.New(db), m, cache.New(rdb), j, cfg.System.IsProd, cfg.Security.RevokeOnLogout)

	// 准备 echo 服务
	e := newEcho(cfg, l, handlerApp)

	// 生产环境的指标只在单独的地址上暴露
	var metricsServer *http.Server
	if cfg.System.MetricsListen != "" {
		metricsServer = newMetricsServer(cfg.System.MetricsListen)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				l.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// 启动 echo 服务
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.System.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	l.Info("shutting down")

	// 等待进行中的请求完成
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("error shutting down the server", zap.Error(err))
	}
	if metricsServer != nil {
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	// 关闭连接池
	if err := inits.CloseDB(db); err != nil {
		l.Error("error closing DB connection", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		l.Error("error closing Redis connection", zap.Error(err))
	}
}
