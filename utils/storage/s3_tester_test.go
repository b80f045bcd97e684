package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/ory/dockertest/v3"
)

type s3Tester struct {
	endpoint string
	client   *s3.Client
}

func (t *s3Tester) setupFunc(resource *dockertest.Resource) func() error {
	return func() error {
		t.endpoint = fmt.Sprintf("http://localhost:%s", resource.GetPort("9000/tcp"))
		fs, err := NewS3FileStorage(bucketName, "ap-northeast-1", t.endpoint, "AKID", "SECRETPASSWORD", true)
		if err != nil {
			return err
		}
		_, err = fs.client.CreateBucket(context.Background(), &s3.CreateBucketInput{
			Bucket: aws.String(bucketName),
		})
		if err != nil {
			var owned *types.BucketAlreadyOwnedByYou
			if !errors.As(err, &owned) {
				return err
			}
		}
		t.client = fs.client
		return nil
	}
}

func (t *s3Tester) teardown() error {
	ctx := context.Background()
	out, err := t.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{Bucket: aws.String(bucketName)})
	if err != nil {
		return err
	}
	for _, obj := range out.Contents {
		if _, err := t.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(bucketName), Key: obj.Key}); err != nil {
			return err
		}
	}
	_, err = t.client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucketName)})
	return err
}

func (t *s3Tester) storage(tb testing.TB) *S3FileStorage {
	tb.Helper()
	if t.client == nil {
		tb.Skip("s3 (minio) is not available")
	}
	return &S3FileStorage{bucket: bucketName, client: t.client}
}
