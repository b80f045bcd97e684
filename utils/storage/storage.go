package storage

import (
	"context"
	"errors"
	"io"
)

// ErrFileNotFound 指定されたキーのファイルは見つかりません
var ErrFileNotFound = errors.New("file not found")

// FileStorage ファイルストレージのインターフェース
//
// keyは "pins/<uuid>.png" のようなスラッシュ区切りの相対パスです。
type FileStorage interface {
	// SaveByKey srcをkeyのファイルとして保存する
	SaveByKey(ctx context.Context, src io.Reader, key, contentType string) error
	// OpenFileByKey keyで指定されたファイルを読み込む
	//
	// 存在しない場合はErrFileNotFoundを返します
	OpenFileByKey(ctx context.Context, key string) (io.ReadSeekCloser, error)
	// DeleteByKey keyで指定されたファイルを削除する
	//
	// 存在しない場合はErrFileNotFoundを返します
	DeleteByKey(ctx context.Context, key string) error
}
