package handlers

import (
	"context"
	"go.uber.org/zap"
	"recipe-rise/app/server/metrics"
	"time"
)

// sweep 删除已释放的资源和超时未被引用的资源，返回成功和失败的数量
func (a *App) sweep(ctx context.Context) (reclaimed int, failed int) {
	// 设置并发锁
	if !a.lock.TryLock() {
		// 上一轮正在处理，跳过这一轮
		return 0, 0
	}
	defer a.lock.Unlock()

	stagedBefore := time.Now().Add(-a.cfg.StagedAssetTTL)
	assets, err := a.db.ListReclaimableAssets(ctx, stagedBefore, a.cfg.SweepBatch)
	if err != nil {
		a.l.Error("failed to list reclaimable assets", zap.Error(err))
		return 0, 0
	}

	for _, asset := range assets {
		if ctx.Err() != nil {
			break
		}

		// 先删远端，成功后才忘掉记录，失败的下一轮重试
		if err = a.media.Delete(ctx, asset.PublicID); err != nil {
			a.l.Warn("failed to delete asset", zap.String("publicID", asset.PublicID), zap.String("state", string(asset.State)), zap.Error(err))
			metrics.AssetsReclaimed.WithLabelValues("error").Inc()
			failed++
			continue
		}
		if err = a.db.ForgetAsset(ctx, asset.PublicID); err != nil {
			a.l.Error("failed to forget asset", zap.String("publicID", asset.PublicID), zap.Error(err))
			metrics.AssetsReclaimed.WithLabelValues("error").Inc()
			failed++
			continue
		}

		metrics.AssetsReclaimed.WithLabelValues(string(asset.State)).Inc()
		reclaimed++
	}

	if len(assets) > 0 {
		a.l.Info("sweep finished", zap.Int("reclaimed", reclaimed), zap.Int("failed", failed))
	}

	return reclaimed, failed
}
