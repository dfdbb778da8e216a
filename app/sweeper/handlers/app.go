package handlers

import (
	"context"
	"go.uber.org/zap"
	"recipe-rise/app/server/models"
	"recipe-rise/app/sweeper/config"
	"sync"
	"time"
)

type AssetStore interface {
	ListReclaimableAssets(ctx context.Context, stagedBefore time.Time, limit int) ([]models.Asset, error)
	ForgetAsset(ctx context.Context, publicID string) error
}

type Media interface {
	Delete(ctx context.Context, publicID string) error
}

type App struct {
	cfg   *config.Config
	l     *zap.Logger
	db    AssetStore
	media Media

	ticker   *time.Ticker
	stopChan chan struct{}
	doneChan chan struct{}
	lock     sync.Mutex
}

func NewApp(cfg *config.Config, l *zap.Logger, db AssetStore, m Media) *App {
	return &App{
		cfg:   cfg,
		l:     l,
		db:    db,
		media: m,
	}
}

// Start 立即清理一轮，之后按间隔循环
func (a *App) Start() {
	a.ticker = time.NewTicker(a.cfg.SweepInterval)
	a.stopChan = make(chan struct{})
	a.doneChan = make(chan struct{})
	go a.loop()
}

func (a *App) loop() {
	defer close(a.doneChan)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-a.stopChan
		cancel()
	}()

	a.sweep(ctx)
	for {
		select {
		case <-a.ticker.C:
			a.l.Debug("sweep loop")
			a.sweep(ctx)
		case <-ctx.Done():
			a.l.Debug("stop sweep loop")
			return
		}
	}
}

// Stop 中断进行中的清理并等待循环退出
func (a *App) Stop() {
	a.ticker.Stop()
	close(a.stopChan)
	<-a.doneChan
}
