package inits

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/cloudinary/cloudinary-go/v2"
	"recipe-rise/app/server/config"
	"recipe-rise/app/server/constants"
	"recipe-rise/app/server/media"
)

// Media 根据配置选择媒体服务
func Media(cfg config.Media) (*media.Adapter, error) {
	var p media.Provider

	switch cfg.Provider {
	case constants.MediaProviderCloudinary:
		var (
			cld *cloudinary.Cloudinary
			err error
		)
		if cfg.CloudinaryURL != "" {
			cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
		} else {
			cld, err = cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to init cloudinary: %w", err)
		}
		p = media.NewCloudinary(cld)

	case constants.MediaProviderS3:
		// 凭据使用 AWS 默认链（环境变量、共享配置、实例角色）
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.S3Region),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init aws session: %w", err)
		}
		p = media.NewS3(sess, cfg.S3Bucket, cfg.S3PublicBaseURL, constants.MediaJPEGQuality)

	default:
		return nil, fmt.Errorf("unknown media provider: %s", cfg.Provider)
	}

	return media.New(p, cfg.Folder, cfg.MaxBytes), nil
}
