package file_store

import (
	"context"
	"io"
	"mime"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

const (
	DefaultS3Region = "us-west-1"
)

type S3FileStore struct {
	bucket                string
	uploader              *s3manager.Uploader
	urlPrefix             string
	customizeFileNameFunc CustomizeFileNameFuncType
}

// NewS3FileStore uploads into bucket; uploaded files are served from
// urlPrefix (a CDN in front of the bucket) or the bucket's public endpoint
// when urlPrefix is empty.
func NewS3FileStore(bucket, region, urlPrefix string) (*S3FileStore, error) {
	if bucket == "" {
		return nil, errors.New("please specify s3 bucket")
	}
	if region == "" {
		region = DefaultS3Region
	}
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create aws session")
	}
	if urlPrefix == "" {
		urlPrefix = "https://" + bucket + ".s3." + region + ".amazonaws.com/"
	}

	return &S3FileStore{
		bucket:    bucket,
		uploader:  s3manager.NewUploader(sess),
		urlPrefix: urlPrefix,
	}, nil
}

func (s *S3FileStore) SetCustomizeFileNameFunc(f CustomizeFileNameFuncType) {
	s.customizeFileNameFunc = f
}

func (s *S3FileStore) Store(ctx context.Context, fileName string, body io.Reader) (string, error) {
	key := defaultKey(fileName)
	if s.customizeFileNameFunc != nil {
		key = s.customizeFileNameFunc(fileName)
	}
	if key == "" {
		return "", errors.New("generate empty s3 key, invalid")
	}

	input := &s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType := mime.TypeByExtension(GetExtNameWithDot(fileName)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", errors.Wrap(err, "upload to s3")
	}
	return key, nil
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	return s.urlPrefix + key
}

func (s *S3FileStore) CleanUp() {
	// do nothing for s3
}
