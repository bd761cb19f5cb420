package archiver

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	objects  map[string][]byte
	putFails int
	puts     int
}

func (f *fakeStore) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[aws.ToString(params.Key)]; ok {
		return &s3.HeadObjectOutput{LastModified: aws.Time(time.Unix(0, 0))}, nil
	}
	return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "not found"}
}

func (f *fakeStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts++
	if f.putFails > 0 {
		f.putFails--
		return nil, errors.New("connection reset")
	}
	b, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = b
	return &s3.PutObjectOutput{}, nil
}

func TestPublish(t *testing.T) {
	store := &fakeStore{objects: map[string][]byte{}, putFails: 1}
	a := &Archiver{S3Client: store, S3Bucket: "reports", S3Prefix: "v1/", DatasetName: "bar"}
	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	key, err := a.Publish(context.Background(), date, []byte("Metric,Value\n"), ".csv")
	require.NoError(t, err)
	assert.Equal(t, "v1/bar/bar_2024-03-01_"+Digest([]byte("Metric,Value\n"))+".csv", key)
	assert.Equal(t, 2, store.puts)
	assert.Equal(t, []byte("Metric,Value\n"), store.objects[key])

	_, err = a.Publish(context.Background(), date, []byte("Metric,Value\n"), ".csv")
	assert.ErrorIs(t, err, ErrFileAlreadyExists)
	assert.Equal(t, 2, store.puts)
}

func TestDigestDependsOnContent(t *testing.T) {
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
	assert.Equal(t, Digest([]byte("a")), Digest([]byte("a")))
}
