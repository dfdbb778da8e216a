package store

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"recipe-rise/app/server/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateUserName 只修改显示名称，nil 表示不修改
func (s *Store) UpdateUserName(ctx context.Context, id uuid.UUID, actualName *string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if actualName == nil {
			return nil
		}
		if err := tx.Model(&user).Update("actual_name", *actualName).Error; err != nil {
			return err
		}
		user.ActualName = *actualName
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateUserProfileInfo 替换头像，头像为空表示清除；简介为 nil 时保持不变；被替换的旧头像标记为待清理
func (s *Store) UpdateUserProfileInfo(ctx context.Context, id uuid.UUID, description *string, pictureURL, pictureID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		previousID := user.ProfilePictureID

		values := map[string]any{
			"profile_picture":    pictureURL,
			"profile_picture_id": pictureID,
		}
		if description != nil {
			values["description"] = *description
		}
		if err := tx.Model(&user).Updates(values).Error; err != nil {
			return err
		}
		if description != nil {
			user.Description = *description
		}
		user.ProfilePicture = pictureURL
		user.ProfilePictureID = pictureID

		if err := setAssetState(tx, pictureID, models.AssetAttached); err != nil {
			return err
		}
		if previousID != pictureID {
			return setAssetState(tx, previousID, models.AssetReleased)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
