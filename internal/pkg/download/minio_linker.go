package download

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"time"

	"propdesk-be/pkg/content"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioLinker uploads the bytes and hands out a presigned GET URL. It issues no tokens.
type MinioLinker struct {
	client *minio.Client
	bucket string
	ttl    time.Duration
}

func NewMinioLinker(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, ttl time.Duration) (*MinioLinker, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	return &MinioLinker{client: client, bucket: bucket, ttl: ttl}, nil
}

func (l *MinioLinker) Link(ctx context.Context, organizationId string, documentId string, d *content.Download) (*Link, error) {
	object := path.Join(orgSegment(organizationId), documentId, d.Filename)

	_, err := l.client.PutObject(ctx, l.bucket, object, bytes.NewReader(d.Body), int64(len(d.Body)), minio.PutObjectOptions{
		ContentType: d.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", object, err)
	}

	params := url.Values{}
	params.Set("response-content-disposition", d.ContentDisposition())
	u, err := l.client.PresignedGetObject(ctx, l.bucket, object, l.ttl, params)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", object, err)
	}

	return &Link{URL: u.String(), ExpiresAt: time.Now().UTC().Add(l.ttl)}, nil
}

func (l *MinioLinker) Resolve(ctx context.Context, token string) (*Ticket, error) {
	return nil, ErrTokenNotFound
}

func orgSegment(organizationId string) string {
	if organizationId == "" {
		return "_default"
	}
	return organizationId
}
