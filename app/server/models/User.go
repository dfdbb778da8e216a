package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	// 基础信息
	Username   string `gorm:"column:username;uniqueIndex;not null"` // 用户名，全局唯一
	ActualName string `gorm:"column:actual_name"`                   // 显示名称

	// 个人资料
	ProfilePicture   string `gorm:"column:profile_picture"`    // 头像地址
	ProfilePictureID string `gorm:"column:profile_picture_id"` // 头像在媒体服务中的 public id
	Description      string `gorm:"column:description"`        // 个人简介

	// 登录认证相关
	Password string `gorm:"column:password;not null"` // 密码，使用 argon2id 储存
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
