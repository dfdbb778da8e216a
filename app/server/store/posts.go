package store

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"recipe-rise/app/server/models"
	"time"
)

func preloadAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username")
}

// CreatePost 写入文章并在同一事务里把封面标记为已引用
func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author").Create(post).Error; err != nil {
			return err
		}
		return setAssetState(tx, post.CoverID, models.AssetAttached)
	}))
}

func (s *Store) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).
		Preload("Author", preloadAuthor).
		First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ListPosts 按创建时间倒序，同一时间按 id 倒序保证顺序稳定
func (s *Store) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).
		Preload("Author", preloadAuthor).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

func (s *Store) ListPostsByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// UpdatePost 覆盖标题、摘要、正文和封面；previousCoverID 与新封面不同时，旧封面标记为待清理
func (s *Store) UpdatePost(ctx context.Context, post *models.Post, previousCoverID string) error {
	now := time.Now()
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]any{
			"title":      post.Title,
			"summary":    post.Summary,
			"content":    post.Content,
			"cover":      post.Cover,
			"cover_id":   post.CoverID,
			"updated_at": now,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		post.UpdatedAt = now

		if err := setAssetState(tx, post.CoverID, models.AssetAttached); err != nil {
			return err
		}
		if previousCoverID != post.CoverID {
			return setAssetState(tx, previousCoverID, models.AssetReleased)
		}
		return nil
	}))
}

// DeletePost 删除文章并返回被删除的记录，封面标记为待清理
func (s *Store) DeletePost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&post).Error; err != nil {
			return err
		}
		return setAssetState(tx, post.CoverID, models.AssetReleased)
	})
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}
