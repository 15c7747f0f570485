// File: store/blob.go
package store

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-xray-sdk-go/strategy/ctxmissing"
	"github.com/aws/aws-xray-sdk-go/xray"

	"chapel-site/logger"
)

// ProgressFunc is called after each chunk with cumulative bytes transferred
// and the total size. Calls are repeated and should be treated as idempotent
// display updates, not a strictly increasing sequence.
type ProgressFunc func(transferred, total int64)

// BlobStore uploads binary files and returns retrievable URLs.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, size int64, body io.Reader, progress ProgressFunc) (string, error)
}

// S3BlobStore implements BlobStore on S3 using the multipart uploader, so
// large sermon recordings transfer in resumable parts.
type S3BlobStore struct {
	bucket   string
	uploader *s3manager.Uploader
}

// NewS3BlobStore builds the S3 client for the configured bucket and region.
// The client is X-Ray instrumented; without an open segment the SDK logs and
// continues rather than failing the upload.
func NewS3BlobStore(bucket, region string) *S3BlobStore {
	xray.Configure(xray.Config{
		ContextMissingStrategy: ctxmissing.NewDefaultLogErrorStrategy(),
	})

	sess := session.Must(session.NewSession(aws.NewConfig().WithRegion(region)))
	svc := s3.New(sess)
	xray.AWS(svc.Client)

	return &S3BlobStore{
		bucket:   bucket,
		uploader: s3manager.NewUploaderWithClient(svc),
	}
}

// Upload streams body to s3://bucket/key and returns the object URL. The
// body is wrapped so every chunk read by the uploader reports progress.
func (s *S3BlobStore) Upload(ctx context.Context, key, contentType string, size int64, body io.Reader, progress ProgressFunc) (string, error) {
	reader := &progressReader{r: body, total: size, onProgress: progress}

	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	logger.Info.Printf("Upload: stored %s (%d bytes) at %s", key, size, out.Location)
	return out.Location, nil
}

// progressReader counts bytes as the uploader consumes them.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if p.onProgress != nil {
			p.onProgress(p.read, p.total)
		}
	}
	return n, err
}
