package media

import (
	"fmt"
	"github.com/gabriel-vasile/mimetype"
	"io"
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Sniff 根据文件内容判断类型（不信任客户端给的文件名），返回扩展名，读取位置会被重置到开头
func Sniff(r io.ReadSeeker) (contentType string, ext string, err error) {
	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", "", fmt.Errorf("detect content type: %w", err)
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("rewind upload: %w", err)
	}

	if !mimetype.EqualsAny(mtype.String(), allowedTypes...) {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}

	return mtype.String(), mtype.Extension(), nil
}
