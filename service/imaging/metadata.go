package imaging

import (
	"errors"
	"image"
	_ "image/gif"  // image.DecodeConfig用
	_ "image/jpeg" // image.DecodeConfig用
	_ "image/png"  // image.DecodeConfig用
	"io"

	"github.com/sapphi-red/midec"
	_ "github.com/sapphi-red/midec/gif"  // midec.IsAnimated用
	_ "github.com/sapphi-red/midec/png"  // midec.IsAnimated用
	_ "github.com/sapphi-red/midec/webp" // midec.IsAnimated用
	_ "golang.org/x/image/webp"          // image.DecodeConfig用
)

// Meta 画像のメタデータ
type Meta struct {
	Width    int
	Height   int
	Format   string
	Animated bool
}

// Orientation 画像の向き。幅が高さ未満の場合は縦長、それ以外は横長です
func (m Meta) Orientation() string {
	if m.Width < m.Height {
		return OrientationPortrait
	}
	return OrientationLandscape
}

// AspectRatio 幅/高さ
func (m Meta) AspectRatio() float64 {
	return float64(m.Width) / float64(m.Height)
}

// Metadata srcの画像のメタデータを読み込みます
//
// maxPixelsが正の場合、画素数がそれを超える画像はErrPixelLimitExceededになります。
// 読み込み後、srcは先頭に戻されます。
func Metadata(src io.ReadSeeker, maxPixels int) (Meta, error) {
	cfg, format, err := image.DecodeConfig(src)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return Meta{}, ErrInvalidImageSrc
		}
		return Meta{}, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Meta{}, ErrInvalidImageSrc
	}
	if maxPixels > 0 && cfg.Width*cfg.Height > maxPixels {
		return Meta{}, ErrPixelLimitExceeded
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return Meta{}, err
	}
	var animated bool
	switch format {
	case "gif", "png", "webp":
		animated, err = midec.IsAnimated(src)
		if err != nil {
			return Meta{}, ErrInvalidImageSrc
		}
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return Meta{}, err
		}
	}

	return Meta{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   format,
		Animated: animated,
	}, nil
}
