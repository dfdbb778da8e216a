package inits

import (
	"fmt"
	"os"
	serverinits "recipe-rise/app/server/inits"
	"recipe-rise/app/sweeper/config"
	"strconv"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	cfg.MetricsListen = os.Getenv("METRICS_LISTEN")

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.DBConnectionString = dbconn
	}

	if intervalStr, exist := os.LookupEnv("SWEEP_INTERVAL"); !exist {
		cfg.SweepInterval = 10 * time.Minute // 默认每十分钟一次
	} else if interval, err := time.ParseDuration(intervalStr); err != nil || interval <= 0 {
		return nil, fmt.Errorf("SWEEP_INTERVAL should be a positive duration")
	} else {
		cfg.SweepInterval = interval
	}

	if ttlStr, exist := os.LookupEnv("STAGED_ASSET_TTL"); !exist {
		cfg.StagedAssetTTL = 1 * time.Hour
	} else if ttl, err := time.ParseDuration(ttlStr); err != nil || ttl <= 0 {
		return nil, fmt.Errorf("STAGED_ASSET_TTL should be a positive duration")
	} else {
		cfg.StagedAssetTTL = ttl
	}

	if batchStr, exist := os.LookupEnv("SWEEP_BATCH"); !exist {
		cfg.SweepBatch = 100
	} else if batch, err := strconv.Atoi(batchStr); err != nil || batch <= 0 {
		return nil, fmt.Errorf("SWEEP_BATCH should be a positive integer")
	} else {
		cfg.SweepBatch = batch
	}

	var err error
	if cfg.Media, err = serverinits.MediaConfig(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
