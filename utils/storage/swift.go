package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ncw/swift/v2"
)

// SwiftFileStorage OpenStack Swiftストレージ
type SwiftFileStorage struct {
	container  string
	connection *swift.Connection
}

// NewSwiftFileStorage 引数の情報でOpenStack Swiftストレージを生成します
func NewSwiftFileStorage(ctx context.Context, container, userName, apiKey, tenant, tenantID, authURL string) (*SwiftFileStorage, error) {
	s := &SwiftFileStorage{
		container: container,
		connection: &swift.Connection{
			AuthUrl:  authURL,
			UserName: userName,
			ApiKey:   apiKey,
			Tenant:   tenant,
			TenantId: tenantID,
		},
	}

	if err := s.connection.Authenticate(ctx); err != nil {
		return nil, err
	}

	containers, err := s.connection.ContainerNamesAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, v := range containers {
		if v == container {
			return s, nil
		}
	}

	return nil, fmt.Errorf("container %s is not found", container)
}

// OpenFileByKey ファイルを取得します
func (s *SwiftFileStorage) OpenFileByKey(ctx context.Context, key string) (io.ReadSeekCloser, error) {
	file, _, err := s.connection.ObjectOpen(ctx, s.container, key, true, nil)
	if err != nil {
		if errors.Is(err, swift.ObjectNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

// SaveByKey srcの内容をkeyで指定されたファイルに書き込みます
func (s *SwiftFileStorage) SaveByKey(ctx context.Context, src io.Reader, key, contentType string) error {
	headers := swift.Headers{
		"Cache-Control": "public, max-age=31536000, immutable",
	}
	_, err := s.connection.ObjectPut(ctx, s.container, key, src, true, "", contentType, headers)
	return err
}

// DeleteByKey ファイルを削除します
func (s *SwiftFileStorage) DeleteByKey(ctx context.Context, key string) error {
	err := s.connection.ObjectDelete(ctx, s.container, key)
	if errors.Is(err, swift.ObjectNotFound) {
		return ErrFileNotFound
	}
	return err
}
