package imaging

import (
	"context"
	"image"
	"io"
)

// Processor 画像処理器
type Processor interface {
	// Render srcの画像に変換を適用した画像を返します
	//
	// 画像として読み込めない場合、ErrInvalidImageSrcを返します。
	// 画素数が上限を超える場合、ErrPixelLimitExceededを返します。
	Render(ctx context.Context, src io.ReadSeeker, t Transformation) (image.Image, error)
}
