package handlers

import (
	"context"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"recipe-rise/app/server/constants"
	"recipe-rise/app/server/media"
)

var (
	coverTransform = media.Transform{
		MaxWidth:  constants.MediaCoverMaxWidth,
		MaxHeight: constants.MediaCoverMaxHeight,
	}
	avatarTransform = media.Transform{
		MaxWidth:  constants.MediaAvatarMaxWidth,
		MaxHeight: constants.MediaAvatarMaxHeight,
	}
)

// uploadFormImage 把表单中的图片上传到媒体服务。
// 上传前先登记资源，请求中途失败时由 sweeper 回收；表单中没有该文件时返回 nil, nil
func (a *App) uploadFormImage(c echo.Context, field string, t media.Transform) (*media.AssetRef, error, int) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, http.StatusOK
		}
		return nil, fmt.Errorf("read form file %s: %w", field, err), http.StatusBadRequest
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file %s: %w", field, err), http.StatusBadRequest
	}
	defer f.Close()

	// 检查文件类型
	contentType, ext, err := media.Sniff(f)
	if err != nil {
		return nil, err, http.StatusBadRequest
	}

	rctx := c.Request().Context()
	publicID := a.media.NewPublicID()

	if err = a.db.StageAsset(rctx, publicID); err != nil {
		return nil, fmt.Errorf("stage asset: %w", err), http.StatusInternalServerError
	}

	ref, err := a.media.Upload(rctx, f, publicID, t)
	if err != nil {
		// 超出体积上限时远端已经存在，也需要删除
		a.dropAsset(rctx, publicID)
		if errors.Is(err, media.ErrAssetTooLarge) {
			return nil, err, http.StatusBadRequest
		}
		return nil, fmt.Errorf("upload asset: %w", err), http.StatusInternalServerError
	}

	a.l.Debug("image uploaded",
		zap.String("publicID", ref.PublicID),
		zap.String("filename", fh.Filename),
		zap.String("contentType", contentType),
		zap.String("ext", ext),
		zap.Int64("bytes", ref.Bytes),
	)

	return ref, nil, http.StatusOK
}

func (a *App) uploadEr(c echo.Context, err error, statusCode int) error {
	switch {
	case errors.Is(err, media.ErrAssetTooLarge):
		return a.erm(c, http.StatusBadRequest, msgImageTooLarge)
	case errors.Is(err, media.ErrUnsupportedType):
		return a.erm(c, http.StatusBadRequest, msgImageType)
	}
	if statusCode >= http.StatusInternalServerError {
		a.l.Error("failed to upload image", zap.Error(err))
	} else {
		a.l.Debug("rejected image upload", zap.Error(err))
	}
	return a.er(c, statusCode)
}

// dropAsset 删除远端资源并忘掉登记；删除失败时标记为已释放，交给 sweeper 重试
func (a *App) dropAsset(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)

	if err := a.media.Delete(ctx, publicID); err != nil {
		a.l.Warn("failed to delete asset, leaving it to the sweeper", zap.String("publicID", publicID), zap.Error(err))
		if err = a.db.ReleaseAsset(ctx, publicID); err != nil {
			a.l.Error("failed to release asset", zap.String("publicID", publicID), zap.Error(err))
		}
		return
	}

	if err := a.db.ForgetAsset(ctx, publicID); err != nil {
		a.l.Error("failed to forget asset", zap.String("publicID", publicID), zap.Error(err))
	}
}
