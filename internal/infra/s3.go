package infra

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"exusiai.dev/gazeseq/internal/app/appconfig"
)

// S3Client is nil when no report bucket is configured.
func S3Client(conf *appconfig.Config) (*s3.Client, error) {
	if conf.ReportS3Bucket == "" {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.ReportS3Region),
	}
	if conf.AWSAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AWSAccessKey, conf.AWSSecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	// retries are handled by the archiver
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.RetryMaxAttempts = 1
	}), nil
}
