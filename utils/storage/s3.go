package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3FileStorage S3互換オブジェクトストレージ
type S3FileStorage struct {
	bucket string
	client *s3.Client
}

// NewS3FileStorage 引数の情報でS3ストレージを生成します
func NewS3FileStorage(bucket, region, endpoint, apiKey, apiSecret string, forcePathStyle bool) (*S3FileStorage, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(apiKey, apiSecret, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(opt *s3.Options) {
		if endpoint != "" {
			opt.BaseEndpoint = aws.String(endpoint)
		}
		opt.UsePathStyle = forcePathStyle
	})

	return &S3FileStorage{
		bucket: bucket,
		client: client,
	}, nil
}

// OpenFileByKey ファイルを取得します
func (s *S3FileStorage) OpenFileByKey(ctx context.Context, key string) (io.ReadSeekCloser, error) {
	obj, err := s.getObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return obj, nil
}

// SaveByKey srcの内容をkeyで指定されたファイルに書き込みます
func (s *S3FileStorage) SaveByKey(ctx context.Context, src io.Reader, key, contentType string) error {
	uploader := manager.NewUploader(s.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         src,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	return err
}

// DeleteByKey ファイルを削除します
func (s *S3FileStorage) DeleteByKey(ctx context.Context, key string) error {
	// DeleteObjectは存在しないキーに対してもエラーを返さない
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isS3NotFound(err) {
			return ErrFileNotFound
		}
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3FileStorage) getObject(ctx context.Context, input *s3.GetObjectInput) (*s3Object, error) {
	if input == nil {
		return nil, fmt.Errorf("input is nil")
	}

	attrOut, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: input.Bucket,
		Key:    input.Key,
	})
	if err != nil {
		return nil, err
	}

	objOut, err := s.client.GetObject(ctx, input)
	if err != nil {
		return nil, err
	}

	return &s3Object{
		ctx:      ctx,
		client:   s.client,
		input:    *input,
		length:   aws.ToInt64(attrOut.ContentLength),
		lengthOk: attrOut.ContentLength != nil,
		body:     objOut.Body,
	}, nil
}

func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &nf)
}
