package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/ruteri/weblogic-domain-provisioner/interfaces"
)

// S3Backend keeps artifacts as private objects <prefix>/<kind>/<id> in a bucket of
// Amazon S3 or a compatible service. Secrets are encrypted at rest by the service.
type S3Backend struct {
	client         *s3.S3
	bucket         string
	prefix         string
	location       string
	hasStaticCreds bool
	log            *slog.Logger
}

type S3Config struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string // S3-compatible service, addressed in path style
	// Static credentials are used only when both are set, otherwise the default
	// AWS credential chain applies.
	AccessKey string
	SecretKey string
}

func NewS3Backend(cfg S3Config, log *slog.Logger) (*S3Backend, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}

	hasStaticCreds := cfg.AccessKey != "" && cfg.SecretKey != ""
	if hasStaticCreds {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""))
	} else {
		log.Debug("No S3 credentials in archive location, using the default credential chain")
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("could not create AWS session: %w", err)
	}

	prefix := strings.Trim(cfg.Prefix, "/")
	location := fmt.Sprintf("s3://%s/%s?region=%s", cfg.Bucket, prefix, cfg.Region)
	if cfg.Endpoint != "" {
		location += "&endpoint=" + cfg.Endpoint
	}

	return &S3Backend{
		client:         s3.New(sess),
		bucket:         cfg.Bucket,
		prefix:         prefix,
		location:       location,
		hasStaticCreds: hasStaticCreds,
		log:            log,
	}, nil
}

func (b *S3Backend) Put(ctx context.Context, data []byte, kind interfaces.ArtifactKind) (interfaces.ArtifactID, error) {
	id := interfaces.ComputeArtifactID(data)
	key := b.key(id, kind)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/plain"),
	}
	if kind == interfaces.KindSecret {
		input.ServerSideEncryption = aws.String(s3.ServerSideEncryptionAes256)
	}

	if _, err := b.client.PutObjectWithContext(ctx, input); err != nil {
		if !b.hasStaticCreds {
			return id, fmt.Errorf("could not put s3://%s/%s (default credential chain): %w", b.bucket, key, err)
		}
		return id, fmt.Errorf("could not put s3://%s/%s: %w", b.bucket, key, err)
	}

	b.log.Debug("Archived to S3", slog.String("bucket", b.bucket), slog.String("key", key))
	return id, nil
}

func (b *S3Backend) Get(ctx context.Context, id interfaces.ArtifactID, kind interfaces.ArtifactKind) ([]byte, error) {
	key := b.key(id, kind)
	out, err := b.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, fmt.Errorf("%w: s3://%s/%s", interfaces.ErrArtifactNotFound, b.bucket, key)
		}
		return nil, fmt.Errorf("could not get s3://%s/%s: %w", b.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read s3://%s/%s: %w", b.bucket, key, err)
	}
	return data, nil
}

// Available heads the bucket.
func (b *S3Backend) Available(ctx context.Context) bool {
	_, err := b.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(b.bucket)})
	if err != nil {
		b.log.Warn("S3 archive unavailable", slog.String("bucket", b.bucket), "err", err)
		return false
	}
	return true
}

func (b *S3Backend) Name() string {
	return "s3-" + b.bucket
}

func (b *S3Backend) Location() string {
	return b.location
}

func (b *S3Backend) key(id interfaces.ArtifactID, kind interfaces.ArtifactKind) string {
	return path.Join(b.prefix, kind.String(), id.String())
}
