package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStorage ローカルファイルストレージ
type LocalFileStorage struct {
	dirName string
}

// NewLocalFileStorage LocalFileStorageを生成します。指定したディレクトリが存在しない場合は作成します
func NewLocalFileStorage(dir string) (*LocalFileStorage, error) {
	if dir == "" {
		dir = "./storage"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileStorage{dirName: dir}, nil
}

// OpenFileByKey ファイルを取得します
func (s *LocalFileStorage) OpenFileByKey(_ context.Context, key string) (io.ReadSeekCloser, error) {
	p, err := s.getFilePath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return f, nil
}

// SaveByKey srcの内容をkeyで指定されたファイルに書き込みます
func (s *LocalFileStorage) SaveByKey(_ context.Context, src io.Reader, key, _ string) (err error) {
	p, err := s.getFilePath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	file, err := os.Create(p)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(p)
		}
	}()

	_, err = io.Copy(file, src)
	return err
}

// DeleteByKey ファイルを削除します
func (s *LocalFileStorage) DeleteByKey(_ context.Context, key string) error {
	p, err := s.getFilePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return err
	}
	return nil
}

// GetDir ファイルの保存先を取得する
func (s *LocalFileStorage) GetDir() string {
	return s.dirName
}

func (s *LocalFileStorage) getFilePath(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "\\") {
		return "", ErrFileNotFound
	}
	return filepath.Join(s.dirName, filepath.FromSlash(clean)), nil
}
