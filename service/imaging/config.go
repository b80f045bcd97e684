package imaging

import "errors"

var (
	// ErrPixelLimitExceeded 画像の画素数が上限を超えています
	ErrPixelLimitExceeded = errors.New("the image exceeds max pixels limit")
	// ErrInvalidImageSrc 画像として読み込めません
	ErrInvalidImageSrc = errors.New("invalid image src")
	// ErrInvalidCanvasSize canvasOptions.sizeが不正です
	ErrInvalidCanvasSize = errors.New("invalid canvas size")
	// ErrInvalidCanvasHeight テキストを配置するためのcanvasOptions.heightが不正です
	ErrInvalidCanvasHeight = errors.New("invalid canvas height")
	// ErrInvalidColor 色の指定が不正です
	ErrInvalidColor = errors.New("invalid color")
)

// Config 画像処理設定
type Config struct {
	// MaxPixels 処理可能な最大画素数
	// この値を超える画素数の画像を処理しようとした場合、全てエラーになります
	MaxPixels int
	// Concurrency 処理並列数
	Concurrency int
}
