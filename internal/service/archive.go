package service

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/pkg/archiver"
)

// Archive publishes rendered reports to S3. Without a configured bucket it does nothing.
type Archive struct {
	store  archiver.ObjectStore
	bucket string
	prefix string
}

func NewArchive(conf *appconfig.Config, s3Client *s3.Client) *Archive {
	a := &Archive{
		bucket: conf.ReportS3Bucket,
		prefix: conf.ReportS3Prefix,
	}
	if s3Client != nil {
		a.store = s3Client
	}
	return a
}

// NewArchiveWithStore is NewArchive over any object store.
func NewArchiveWithStore(store archiver.ObjectStore, bucket string, prefix string) *Archive {
	return &Archive{store: store, bucket: bucket, prefix: prefix}
}

func (s *Archive) Enabled() bool {
	return s.store != nil && s.bucket != ""
}

// Publish uploads a report body and returns its object key, or "" when publishing
// is disabled.
func (s *Archive) Publish(ctx context.Context, dataset string, date time.Time, body []byte, ext string) (string, error) {
	if !s.Enabled() {
		log.Trace().Str("dataset", dataset).Msg("report archive disabled, skipping publish")
		return "", nil
	}

	a := &archiver.Archiver{
		S3Client:    s.store,
		S3Bucket:    s.bucket,
		S3Prefix:    s.prefix,
		DatasetName: dataset,
	}
	return a.Publish(ctx, date, body, ext)
}
