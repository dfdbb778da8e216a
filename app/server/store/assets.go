package store

import (
	"context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"recipe-rise/app/server/models"
	"time"
)

func setAssetState(tx *gorm.DB, publicID string, state models.AssetState) error {
	if publicID == "" {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "public_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"state":      state,
			"updated_at": time.Now(),
		}),
	}).Create(&models.Asset{
		PublicID: publicID,
		State:    state,
	}).Error
}

// StageAsset 在上传之前登记资源
func (s *Store) StageAsset(ctx context.Context, publicID string) error {
	return translate(s.db.WithContext(ctx).Create(&models.Asset{
		PublicID: publicID,
		State:    models.AssetStaged,
	}).Error)
}

func (s *Store) ReleaseAsset(ctx context.Context, publicID string) error {
	return translate(setAssetState(s.db.WithContext(ctx), publicID, models.AssetReleased))
}

// ForgetAsset 资源已经从媒体服务删除后调用
func (s *Store) ForgetAsset(ctx context.Context, publicID string) error {
	return translate(s.db.WithContext(ctx).Delete(&models.Asset{}, "public_id = ?", publicID).Error)
}

// ListReclaimableAssets 列出所有待清理的资源，以及登记时间早于 stagedBefore 但一直没被引用的资源
func (s *Store) ListReclaimableAssets(ctx context.Context, stagedBefore time.Time, limit int) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.WithContext(ctx).
		Where("state = ? OR (state = ? AND created_at < ?)", models.AssetReleased, models.AssetStaged, stagedBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&assets).Error; err != nil {
		return nil, translate(err)
	}
	return assets, nil
}
