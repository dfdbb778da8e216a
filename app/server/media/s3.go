package media

import (
	"bytes"
	"context"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"io"
	"strings"
)

var _ Provider = (*S3)(nil)

// S3 没有服务端图片处理，缩放和压缩在本地完成，统一存为 JPEG
type S3 struct {
	client   *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
	quality  int
}

func NewS3(sess *session.Session, bucket, publicBaseURL string, quality int) *S3 {
	client := s3.New(sess)
	return &S3{
		client:   client,
		uploader: s3manager.NewUploaderWithClient(client),
		bucket:   bucket,
		baseURL:  strings.TrimRight(publicBaseURL, "/"),
		quality:  quality,
	}
}

func s3Key(publicID string) string {
	return publicID + ".jpg"
}

func (s *S3) publicURL(publicID string) string {
	return s.baseURL + "/" + s3Key(publicID)
}

func (s *S3) Upload(ctx context.Context, r io.Reader, publicID string, t Transform) (*AssetRef, error) {
	data, err := Fit(r, t, s.quality)
	if err != nil {
		return nil, err
	}

	if _, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(s3Key(publicID)),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/jpeg"),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}); err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}

	return &AssetRef{
		PublicID: publicID,
		URL:      s.publicURL(publicID),
		Bytes:    int64(len(data)),
	}, nil
}

// Delete S3 删除不存在的 key 也会成功
func (s *S3) Delete(ctx context.Context, publicID string) error {
	if _, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Key(publicID)),
	}); err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}
