package upload

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const defaultExt = ".jpg"

// LocalStore saves uploads under Dir with a random file name.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

// FileName returns a random hex name keeping the original extension.
func FileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = defaultExt
	}
	return strings.ReplaceAll(uuid.New().String(), "-", "") + ext
}

// Save copies r into a new file and returns its path.
func (l *LocalStore) Save(original string, r io.Reader) (string, error) {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	filePath := filepath.Join(l.Dir, FileName(original))
	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return filePath, nil
}

// S3Mirror copies saved uploads to a bucket.
type S3Mirror struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Mirror(ctx context.Context, bucket, region, prefix string) (*S3Mirror, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3.bucket is required for the s3 media driver")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Mirror{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

// Key is the object key for a local upload path.
func (s *S3Mirror) Key(filePath string) string {
	return path.Join(s.prefix, filepath.Base(filePath))
}

// Mirror uploads the file at filePath and returns its s3:// URL.
func (s *S3Mirror) Mirror(ctx context.Context, filePath string) (string, error) {
	src, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := s.Key(filePath)
	contentType := mime.TypeByExtension(filepath.Ext(filePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
