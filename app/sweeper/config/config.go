package config

import (
	"recipe-rise/app/server/config"
	"time"
)

type Config struct {
	// 基础配置
	IsProd        bool
	MetricsListen string // 为空时不暴露指标

	// 数据库
	DBConnectionString string

	// 清理策略
	SweepInterval  time.Duration // 两轮清理之间的间隔
	StagedAssetTTL time.Duration // 登记后超过这个时间仍未被引用的资源视为孤儿
	SweepBatch     int           // 每轮最多处理的资源数量

	// 媒体服务，与 server 共用
	Media config.Media
}
