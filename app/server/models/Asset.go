package models

import "time"

type AssetState string

const (
	AssetStaged   AssetState = "staged"   // 准备上传，还没有记录引用
	AssetAttached AssetState = "attached" // 已被文章或用户引用
	AssetReleased AssetState = "released" // 不再被引用，等待删除
)

// Asset 记录媒体服务中的资源，先写记录再上传，由 sweeper 清理孤儿资源
type Asset struct {
	PublicID  string     `gorm:"column:public_id;primaryKey"`
	State     AssetState `gorm:"column:state;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}
