//go:generate go run github.com/golang/mock/mockgen@latest -source=$GOFILE -destination=mock_$GOPACKAGE/mock_$GOFILE
package media

import (
	"context"
	"errors"
	"io"

	"github.com/traPtitech/pinboard/service/imaging"
)

var (
	// ErrAnimatedNotSupported アニメーション画像は処理できません
	ErrAnimatedNotSupported = errors.New("animated images are not supported")
	// ErrUploadFailed 画像変換サービスへのアップロードに失敗しました
	ErrUploadFailed = errors.New("upload failed")
)

// UploadRequest ピン画像のアップロードリクエスト
type UploadRequest struct {
	// Filename クライアントが送信したファイル名
	Filename string
	// ContentType クライアントが送信したContent-Type
	ContentType    string
	Body           io.ReadSeeker
	Meta           imaging.Meta
	Transformation imaging.Transformation
}

// UploadResult アップロード結果
type UploadResult struct {
	// FilePath 保存された画像のパス
	FilePath string
	Width    int
	Height   int
}

// Uploader 変換を適用してピン画像を保存するバックエンド
type Uploader interface {
	// Upload 画像に変換を適用して保存します
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
}
