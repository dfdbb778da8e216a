package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Post struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;index"` // 列表按创建时间倒序
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Title   string `gorm:"column:title"`
	Summary string `gorm:"column:summary"`
	Content string `gorm:"column:content"`

	Cover   string `gorm:"column:cover"`    // 封面地址
	CoverID string `gorm:"column:cover_id"` // 封面在媒体服务中的 public id

	AuthorID uuid.UUID `gorm:"column:author_id;type:uuid;index;not null"`

	// 连接模型时使用
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
