package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// InMemoryFileStorage インメモリファイルストレージ
type InMemoryFileStorage struct {
	mu      sync.RWMutex
	fileMap map[string]inMemoryFile
}

type inMemoryFile struct {
	data        []byte
	contentType string
}

// NewInMemoryFileStorage インメモリのファイルストレージを生成します。主にテスト用
func NewInMemoryFileStorage() *InMemoryFileStorage {
	return &InMemoryFileStorage{
		fileMap: make(map[string]inMemoryFile),
	}
}

// SaveByKey srcの内容をkeyで指定されたファイルに書き込みます
func (s *InMemoryFileStorage) SaveByKey(_ context.Context, src io.Reader, key, contentType string) error {
	b, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.fileMap[key] = inMemoryFile{data: b, contentType: contentType}
	s.mu.Unlock()
	return nil
}

// OpenFileByKey ファイルを取得します
func (s *InMemoryFileStorage) OpenFileByKey(_ context.Context, key string) (io.ReadSeekCloser, error) {
	s.mu.RLock()
	f, ok := s.fileMap[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrFileNotFound
	}
	return &closableByteReader{bytes.NewReader(f.data)}, nil
}

// DeleteByKey ファイルを削除します
func (s *InMemoryFileStorage) DeleteByKey(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.fileMap[key]; !ok {
		return ErrFileNotFound
	}
	delete(s.fileMap, key)
	return nil
}

// ContentType 保存時に指定されたContentTypeを返します
func (s *InMemoryFileStorage) ContentType(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fileMap[key]
	return f.contentType, ok
}

// Len 保存されているファイル数を返します
func (s *InMemoryFileStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fileMap)
}

type closableByteReader struct {
	*bytes.Reader
}

// Close 何もしません
func (*closableByteReader) Close() error {
	return nil
}
