package inits

import (
	"fmt"
	"os"
	"recipe-rise/app/server/config"
	"recipe-rise/app/server/constants"
	"strconv"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	var cfg config.Config
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); exist {
		cfg.System.Listen = listen
	} else if port, exist := os.LookupEnv("PORT"); exist {
		cfg.System.Listen = ":" + port
	} else {
		cfg.System.Listen = ":4000" // 默认监听地址
	}

	if metricsListen, exist := os.LookupEnv("METRICS_LISTEN"); exist {
		cfg.System.MetricsListen = metricsListen
	}

	if origin, exist := os.LookupEnv("CORS_ORIGIN"); !exist {
		cfg.System.CORSOrigin = "http://localhost:3000"
	} else {
		cfg.System.CORSOrigin = origin
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	var err error
	if cfg.System.DBMaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.System.DBMaxIdleConns, err = envInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.System.DBConnMaxLifetime, err = envDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return nil, err
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	if cfg.Security.SessionTTL, err = envDuration("SESSION_TTL", constants.SessionDefaultTTL); err != nil {
		return nil, err
	}

	if revoke, exist := os.LookupEnv("SESSION_REVOKE_ON_LOGOUT"); exist {
		if cfg.Security.RevokeOnLogout, err = strconv.ParseBool(revoke); err != nil {
			return nil, fmt.Errorf("SESSION_REVOKE_ON_LOGOUT should be a boolean")
		}
	}

	if cfg.Media, err = MediaConfig(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MediaConfig 单独导出，给 sweeper 复用
func MediaConfig() (m config.Media, err error) {
	if provider, exist := os.LookupEnv("MEDIA_PROVIDER"); !exist {
		m.Provider = constants.MediaProviderCloudinary
	} else {
		m.Provider = strings.ToLower(provider)
	}

	if folder, exist := os.LookupEnv("MEDIA_FOLDER"); !exist {
		m.Folder = constants.MediaDefaultFolder
	} else {
		m.Folder = folder
	}

	if maxBytesStr, exist := os.LookupEnv("MEDIA_MAX_BYTES"); !exist {
		m.MaxBytes = constants.MediaMaxAssetBytes
	} else if m.MaxBytes, err = strconv.ParseInt(maxBytesStr, 10, 64); err != nil || m.MaxBytes <= 0 {
		return m, fmt.Errorf("MEDIA_MAX_BYTES should be a positive integer")
	}

	switch m.Provider {
	case constants.MediaProviderCloudinary:
		if url, exist := os.LookupEnv("CLOUDINARY_URL"); exist {
			m.CloudinaryURL = url
			return m, nil
		}
		for name, dst := range map[string]*string{
			"CLOUDINARY_CLOUD_NAME": &m.CloudinaryCloudName,
			"CLOUDINARY_API_KEY":    &m.CloudinaryAPIKey,
			"CLOUDINARY_API_SECRET": &m.CloudinaryAPISecret,
		} {
			v, exist := os.LookupEnv(name)
			if !exist {
				return m, fmt.Errorf("%s environment variable not set", name)
			}
			*dst = v
		}
	case constants.MediaProviderS3:
		for name, dst := range map[string]*string{
			"S3_REGION":          &m.S3Region,
			"S3_BUCKET":          &m.S3Bucket,
			"S3_PUBLIC_BASE_URL": &m.S3PublicBaseURL,
		} {
			v, exist := os.LookupEnv(name)
			if !exist {
				return m, fmt.Errorf("%s environment variable not set", name)
			}
			*dst = v
		}
	default:
		return m, fmt.Errorf("unknown MEDIA_PROVIDER: %s", m.Provider)
	}

	return m, nil
}

func envInt(name string, def int) (int, error) {
	s, exist := os.LookupEnv(name)
	if !exist {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s should be an integer", name)
	}
	return v, nil
}

func envDuration(name string, def time.Duration) (time.Duration, error) {
	s, exist := os.LookupEnv(name)
	if !exist {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s should be a valid duration", name)
	}
	return v, nil
}
