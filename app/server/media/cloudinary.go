package media

import (
	"context"
	"fmt"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"io"
)

var _ Provider = (*Cloudinary)(nil)

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cld *cloudinary.Cloudinary) *Cloudinary {
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld}
}

// cloudinaryTransformation 先限制在尺寸盒子内，再自动选择格式和质量
func cloudinaryTransformation(t Transform) string {
	return fmt.Sprintf("c_limit,h_%d,w_%d/f_auto,fl_progressive,q_auto:good", t.MaxHeight, t.MaxWidth)
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, publicID string, t Transform) (*AssetRef, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:       publicID,
		Transformation: cloudinaryTransformation(t),
		AllowedFormats: api.CldAPIArray{"jpg", "jpeg", "png", "gif"},
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}

	return &AssetRef{
		PublicID: res.PublicID,
		URL:      res.SecureURL,
		Bytes:    int64(res.Bytes),
	}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", res.Error.Message)
	}

	switch res.Result {
	case "ok":
		return nil
	case "not found":
		return ErrAssetNotFound
	default:
		return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
	}
}
