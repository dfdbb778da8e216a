// Package media 负责把图片上传到远端媒体服务（Cloudinary 或 S3），
// 上传时按给定的尺寸上限等比缩放并压缩，上传后检查体积上限。
package media

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"io"
	"path"
	"recipe-rise/app/server/metrics"
)

var (
	ErrAssetTooLarge   = errors.New("asset too large")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrUnsupportedType = errors.New("unsupported media type")
)

// Transform 尺寸上限，等比缩放，只缩小不放大
type Transform struct {
	MaxWidth  int
	MaxHeight int
}

type AssetRef struct {
	PublicID string
	URL      string
	Bytes    int64
}

type Provider interface {
	Upload(ctx context.Context, r io.Reader, publicID string, t Transform) (*AssetRef, error)
	Delete(ctx context.Context, publicID string) error
}

type Adapter struct {
	p        Provider
	folder   string
	maxBytes int64
}

func New(p Provider, folder string, maxBytes int64) *Adapter {
	return &Adapter{
		p:        p,
		folder:   folder,
		maxBytes: maxBytes,
	}
}

// NewPublicID 生成一个新的资源 id ，上传前先用它登记
func (a *Adapter) NewPublicID() string {
	return path.Join(a.folder, uuid.NewString())
}

// Upload 上传并检查体积。超过上限时资源已经存在于远端，会同时返回 AssetRef 和 ErrAssetTooLarge ，由调用方决定去留
func (a *Adapter) Upload(ctx context.Context, r io.Reader, publicID string, t Transform) (*AssetRef, error) {
	ref, err := a.p.Upload(ctx, r, publicID, t)
	if err != nil {
		metrics.RecordUpload("error", 0)
		return nil, fmt.Errorf("upload %s: %w", publicID, err)
	}

	if ref.Bytes > a.maxBytes {
		metrics.RecordUpload("too_large", ref.Bytes)
		return ref, ErrAssetTooLarge
	}

	metrics.RecordUpload("ok", ref.Bytes)
	return ref, nil
}

// Delete 资源本来就不存在时不算错误
func (a *Adapter) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if err := a.p.Delete(ctx, publicID); err != nil && !errors.Is(err, ErrAssetNotFound) {
		return fmt.Errorf("delete %s: %w", publicID, err)
	}
	return nil
}
