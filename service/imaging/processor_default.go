package imaging

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"
)

type defaultProcessor struct {
	c  Config
	sp *semaphore.Weighted
}

// NewProcessor 画像処理器を生成します
func NewProcessor(c Config) Processor {
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	return &defaultProcessor{
		c:  c,
		sp: semaphore.NewWeighted(int64(c.Concurrency)),
	}
}

func (p *defaultProcessor) Render(ctx context.Context, src io.ReadSeeker, t Transformation) (image.Image, error) {
	if err := p.sp.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer p.sp.Release(1)

	meta, err := Metadata(src, p.c.MaxPixels)
	if err != nil {
		return nil, err
	}
	if t.Width <= 0 || t.Height <= 0 {
		return nil, ErrInvalidCanvasSize
	}
	if p.c.MaxPixels > 0 && t.Height > p.c.MaxPixels/t.Width {
		return nil, ErrPixelLimitExceeded
	}

	orig, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidImageSrc
	}

	bg, err := ParseHexColor(t.Background)
	if err != nil {
		bg = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}

	var dst *image.NRGBA
	if t.PadResize {
		// 全体が収まるように拡縮し、中央に配置して余白を背景色で埋める
		scale := math.Min(float64(t.Width)/float64(meta.Width), float64(t.Height)/float64(meta.Height))
		w := max(1, int(math.Round(float64(meta.Width)*scale)))
		h := max(1, int(math.Round(float64(meta.Height)*scale)))
		dst = imaging.New(t.Width, t.Height, bg)
		dst = imaging.PasteCenter(dst, imaging.Resize(orig, w, h, resampleFilter))
	} else {
		// 背景色の上に合成することで透過部分を背景色にする
		filled := imaging.Fill(orig, t.Width, t.Height, imaging.Center, resampleFilter)
		dst = imaging.New(t.Width, t.Height, bg)
		draw.Draw(dst, dst.Bounds(), filled, filled.Bounds().Min, draw.Over)
	}

	if t.Text != nil {
		if err := drawText(dst, t.Text); err != nil {
			return nil, err
		}
	}
	return dst, nil
}
