// Package blobstore mirrors ingested demos to an S3-compatible bucket
// the mirror is best effort: local disk stays the source of truth and the
// pipeline never fails an ingest because a mirror write failed
package blobstore

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	perr "demovault/internal/platform/errors"
	"demovault/internal/platform/logger"
)

// Options configures the mirror client
// Endpoint covers R2 and other S3-compatible stores; empty means plain AWS
type Options struct {
	Enabled         bool
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
}

// Mirror uploads demo files under their ingestion key
type Mirror struct {
	s3     *s3.Client
	bucket string
	log    logger.Logger
}

// New builds a Mirror, or nil when the mirror is disabled
// callers nil-check, matching the optional-store convention elsewhere
func New(ctx context.Context, o Options) (*Mirror, error) {
	if !o.Enabled {
		return nil, nil
	}
	if o.Bucket == "" {
		return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "blobstore bucket is required")
	}
	if o.Region == "" {
		o.Region = "auto"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(o.Region),
	}
	if o.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.AccessKeySecret, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "blobstore load aws config failed")
	}

	cli := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})

	return &Mirror{
		s3:     cli,
		bucket: o.Bucket,
		log:    *logger.Named("blobstore"),
	}, nil
}

// Put uploads the file at path under key
func (m *Mirror) Put(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "blobstore open %s failed", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			m.log.Error().Err(cerr).Str("path", path).Msg("blobstore close file failed")
		}
	}()

	_, err = m.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "blobstore put %s failed", key)
	}
	return nil
}

// Key builds the mirror object key for an account's demo file
func Key(accountID, filename string) string {
	return fmt.Sprintf("demos/%s/%s", accountID, filename)
}
