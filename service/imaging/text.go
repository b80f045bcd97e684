package imaging

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	regularFont     *opentype.Font
	regularFontErr  error
	regularFontOnce sync.Once
)

func loadFont() (*opentype.Font, error) {
	regularFontOnce.Do(func() {
		regularFont, regularFontErr = opentype.Parse(goregular.TTF)
	})
	return regularFont, regularFontErr
}

// drawText dstの(Left, Top)を左上としてテキストを描画します
func drawText(dst *image.NRGBA, t *TextOverlay) error {
	f, err := loadFont()
	if err != nil {
		return err
	}
	size := t.FontSize
	if size <= 0 {
		size = 16 * fontScale
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer face.Close()

	c, err := ParseHexColor(t.Color)
	if err != nil {
		c = color.NRGBA{A: 0xff}
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(t.Left, t.Top+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(t.Text)
	return nil
}
