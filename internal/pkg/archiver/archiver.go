package archiver

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"
)

const (
	PublishAttempts = 3
	PublishDelay    = 500 * time.Millisecond
)

var ErrFileAlreadyExists = errors.New("file already exists")

// ObjectStore is the subset of *s3.Client the archiver needs.
type ObjectStore interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ ObjectStore = (*s3.Client)(nil)

type Archiver struct {
	S3Client ObjectStore
	S3Bucket string

	// S3Prefix is for the files in the bucket with no leading slash but optionally (typically) with trailing slash
	// e.g. "v1/" or simply "" (empty string)
	S3Prefix string

	DatasetName string

	logger *zerolog.Logger
}

func (a *Archiver) initLogger() {
	if a.logger == nil {
		logger := log.With().
			Str("module", "archiver").
			Str("dataset", a.DatasetName).
			Logger()
		a.logger = &logger
	}
}

// Digest is the content fingerprint embedded in object keys.
func Digest(body []byte) string {
	return strconv.FormatUint(xxh3.Hash(body), 16)
}

// CanonicalFilePath is the key of a report inside the prefix:
// <dataset>/<dataset>_<date>_<digest><ext>
func (a *Archiver) CanonicalFilePath(date time.Time, digest string, ext string) string {
	return a.DatasetName + "/" + a.DatasetName + "_" + date.UTC().Format("2006-01-02") + "_" + digest + ext
}

// Publish uploads body under its canonical key and returns the key. An existing
// object under the same key is never overwritten. Transient failures are retried.
func (a *Archiver) Publish(ctx context.Context, date time.Time, body []byte, ext string) (string, error) {
	a.initLogger()

	key := a.S3Prefix + a.CanonicalFilePath(date, Digest(body), ext)
	a.logger.Info().Str("key", key).Int("bytes", len(body)).Msg("publishing report")

	err := retry.Do(
		func() error {
			if err := a.assertS3FileNonExistence(ctx, key); err != nil {
				return err
			}
			a.logger.Trace().Str("key", key).Msg("asserted S3 file non-existence")

			return a.uploadToS3(ctx, key, body)
		},
		retry.Context(ctx),
		retry.Attempts(PublishAttempts),
		retry.Delay(PublishDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrFileAlreadyExists)
		}),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Warn().Err(err).Uint("attempt", n+1).Msg("retrying report publish")
		}),
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to publish report")
	}

	a.logger.Info().Str("key", key).Msg("report published")
	return key, nil
}

func (a *Archiver) assertS3FileNonExistence(ctx context.Context, key string) error {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(a.S3Bucket),
		Key:    aws.String(key),
	}
	object, err := a.S3Client.HeadObject(ctx, input)
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) {
			if ae.ErrorCode() == "NotFound" {
				return nil
			}
		}
		return errors.Wrap(err, "failed to invoke HeadObject")
	}
	return errors.Wrap(ErrFileAlreadyExists, fmt.Sprintf("file \"%s\" already exists in s3 with LastModified \"%s\"", key, aws.ToTime(object.LastModified)))
}

func (a *Archiver) uploadToS3(ctx context.Context, key string, body []byte) error {
	if _, err := a.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:            aws.String(a.S3Bucket),
		Key:               aws.String(key),
		Body:              bytes.NewReader(body),
		ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
	}); err != nil {
		return errors.Wrap(err, "failed to invoke PutObject")
	}
	return nil
}
