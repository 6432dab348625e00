package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"inkubator_backend/internals/configs"
)

/*
BlobService adalah facade upload/hapus yang seragam untuk service registrasi.
Object key disimpan di DB supaya bisa dibersihkan saat tenant submit ulang.
*/

type Object struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

type BlobService interface {
	Upload(ctx context.Context, dir, filename, contentType string, body []byte) (Object, error)
	DeleteKeys(ctx context.Context, keys []string) error
}

// --------------------------------------------------
// Implementasi berbasis S3 (AWS / MinIO / R2)
// --------------------------------------------------

type S3BlobService struct {
	client        *s3.Client
	bucket        string
	prefix        string
	publicBaseURL string
}

// NewS3BlobServiceFromEnv membaca S3_BUCKET, S3_REGION, S3_ENDPOINT (opsional, path-style),
// S3_PUBLIC_BASE_URL (opsional) dan S3_PREFIX (opsional, contoh: "uploads/").
func NewS3BlobServiceFromEnv(ctx context.Context) (*S3BlobService, error) {
	bucket := strings.TrimSpace(configs.GetEnv("S3_BUCKET"))
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}
	region := configs.GetEnv("S3_REGION", "ap-southeast-1")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := strings.TrimSpace(configs.GetEnv("S3_ENDPOINT"))
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := strings.TrimRight(configs.GetEnv("S3_PUBLIC_BASE_URL"), "/")
	if publicBase == "" {
		if endpoint != "" {
			publicBase = strings.TrimRight(endpoint, "/") + "/" + bucket
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
		}
	}

	return &S3BlobService{
		client:        client,
		bucket:        bucket,
		prefix:        strings.Trim(configs.GetEnv("S3_PREFIX"), "/"),
		publicBaseURL: publicBase,
	}, nil
}

func (s *S3BlobService) key(dir, filename string) string {
	name := GenerateUniqueFilename(dir, filename)
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *S3BlobService) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

func (s *S3BlobService) Upload(ctx context.Context, dir, filename, contentType string, body []byte) (Object, error) {
	key := s.key(dir, filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		zap.L().Error("❌ upload ke S3 gagal", zap.String("key", key), zap.Error(err))
		return Object{}, fmt.Errorf("upload %s: %w", key, err)
	}
	return Object{
		Key:         key,
		URL:         s.PublicURL(key),
		ContentType: contentType,
		Size:        int64(len(body)),
	}, nil
}

func (s *S3BlobService) DeleteKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	ids := make([]types.ObjectIdentifier, 0, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			continue
		}
		ids = append(ids, types.ObjectIdentifier{Key: aws.String(k)})
	}
	if len(ids) == 0 {
		return nil
	}
	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("delete objects: %w", err)
	}
	if len(out.Errors) > 0 {
		return fmt.Errorf("delete objects: %d key gagal dihapus (contoh: %s)", len(out.Errors), aws.ToString(out.Errors[0].Key))
	}
	return nil
}

/* =======================================================================
   Nama object unik
======================================================================= */

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	safe := unsafeChars.ReplaceAllString(filename, "_")
	if safe == "" || safe == "." || safe == ".." {
		return "file"
	}
	return safe
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	name := fmt.Sprintf("%s-%s-%s", timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
