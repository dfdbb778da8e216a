package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"log"
	"net/http"
	"os"
	"os/signal"
	serverinits "recipe-rise/app/server/inits"
	"recipe-rise/app/server/store"
	"recipe-rise/app/sweeper/handlers"
	"recipe-rise/app/sweeper/inits"
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
	l, err := serverinits.Logger(!cfg.IsProd, "sweeper")
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}
	defer l.Sync()

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接，表结构由 server 迁移，这里同样执行以便单独部署
	db, err := serverinits.DB(cfg.DBConnectionString, serverinits.DBOptions{
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	})
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化媒体服务
	m, err := serverinits.Media(cfg.Media)
	if err != nil {
		l.Fatal("error initializing media provider", zap.Error(err))
	}

	// 暴露指标
	var metricsServer *http.Server
	if cfg.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.MetricsListen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				l.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// 开启清理循环
	handlerApp := handlers.NewApp(cfg, l, store.New(db), m)
	handlerApp.Start()

	// 等待退出信号
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	l.Info("shutting down")
	handlerApp.Stop()

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	if err := serverinits.CloseDB(db); err != nil {
		l.Error("error closing DB connection", zap.Error(err))
	}
}
