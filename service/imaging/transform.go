package imaging

import (
	"encoding/base64"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var plainOverlayText = regexp.MustCompile(`^[A-Za-z0-9 ._-]+$`)

// maxTargetSide 変換後の一辺の最大長
const maxTargetSide = 1 << 15

// Transformation 画像に適用する変換
type Transformation struct {
	Width  int
	Height int
	// PadResize 縦横比を保ったまま全体を収め、余白を背景色で埋める
	// falseの場合は縦横比を保ったまま切り抜いて指定サイズにする
	PadResize bool
	// Background #を除いた16進カラーコード
	Background string
	Text       *TextOverlay
}

// TextOverlay 画像に重ねるテキスト
type TextOverlay struct {
	Text     string
	FontSize float64
	Left     int
	Top      int
	// Color #を除いた16進カラーコード
	Color string
}

// ComputeTransformation 元画像のメタデータとクライアントの指定から変換を計算します
func ComputeTransformation(meta Meta, canvas CanvasOptions, text TextOptions) (Transformation, error) {
	if meta.Width <= 0 || meta.Height <= 0 {
		return Transformation{}, ErrInvalidImageSrc
	}

	originalOrientation := meta.Orientation()
	originalAspectRatio := meta.AspectRatio()
	orientation := canvas.Orientation
	if orientation != OrientationPortrait && orientation != OrientationLandscape {
		orientation = originalOrientation
	}

	var (
		clientAspectRatio float64
		explicitRatio     bool
	)
	if size := strings.TrimSpace(canvas.Size); size != "" && size != SizeOriginal {
		r, err := parseAspectRatio(size)
		if err != nil {
			return Transformation{}, err
		}
		clientAspectRatio = r
		explicitRatio = true
	} else if orientation == originalOrientation {
		clientAspectRatio = originalAspectRatio
	} else {
		clientAspectRatio = 1 / originalAspectRatio
	}

	h := math.Round(float64(meta.Width) / clientAspectRatio)
	if math.IsNaN(h) || math.IsInf(h, 0) || h > maxTargetSide {
		return Transformation{}, ErrInvalidCanvasSize
	}

	t := Transformation{
		Width:      meta.Width,
		Height:     max(1, int(h)),
		Background: normalizeHex(canvas.BackgroundColor, "FFFFFF"),
	}
	if explicitRatio {
		t.PadResize = originalAspectRatio > clientAspectRatio
	} else {
		t.PadResize = originalOrientation == OrientationLandscape && orientation == OrientationPortrait
	}

	if len(text.Text) > 0 {
		if canvas.Height <= 0 {
			return Transformation{}, ErrInvalidCanvasHeight
		}
		t.Text = &TextOverlay{
			Text:     text.Text,
			FontSize: math.Round(text.FontSize*fontScale*100) / 100,
			Left:     int(math.Round(text.Left * float64(t.Width) / clientCanvasWidth)),
			Top:      int(math.Round(text.Top * float64(t.Height) / canvas.Height)),
			Color:    normalizeHex(text.Color, "000000"),
		}
	}
	return t, nil
}

// String 画像変換サービスに渡す変換指定文字列を返します
//
//	w-{width},h-{height}[,cm-pad_resize],bg-{color}[,l-text,i-{text},fs-{size},lx-{left},ly-{top},co-{color},l-end]
func (t Transformation) String() string {
	var sb strings.Builder
	sb.WriteString("w-")
	sb.WriteString(strconv.Itoa(t.Width))
	sb.WriteString(",h-")
	sb.WriteString(strconv.Itoa(t.Height))
	if t.PadResize {
		sb.WriteString(",cm-pad_resize")
	}
	sb.WriteString(",bg-")
	sb.WriteString(t.Background)
	if t.Text != nil {
		sb.WriteString(",l-text,")
		if plainOverlayText.MatchString(t.Text.Text) {
			sb.WriteString("i-")
			sb.WriteString(t.Text.Text)
		} else {
			sb.WriteString("ie-")
			sb.WriteString(base64.URLEncoding.EncodeToString([]byte(t.Text.Text)))
		}
		sb.WriteString(",fs-")
		sb.WriteString(strconv.FormatFloat(t.Text.FontSize, 'f', -1, 64))
		sb.WriteString(",lx-")
		sb.WriteString(strconv.Itoa(t.Text.Left))
		sb.WriteString(",ly-")
		sb.WriteString(strconv.Itoa(t.Text.Top))
		sb.WriteString(",co-")
		sb.WriteString(t.Text.Color)
		sb.WriteString(",l-end")
	}
	return sb.String()
}

func parseAspectRatio(s string) (float64, error) {
	w, h, ok := strings.Cut(s, ":")
	if !ok {
		return 0, ErrInvalidCanvasSize
	}
	fw, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil || fw <= 0 || math.IsInf(fw, 0) {
		return 0, ErrInvalidCanvasSize
	}
	fh, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil || fh <= 0 || math.IsInf(fh, 0) {
		return 0, ErrInvalidCanvasSize
	}
	r := fw / fh
	if r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, ErrInvalidCanvasSize
	}
	return r, nil
}

func normalizeHex(s, def string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 0 {
		return def
	}
	return strings.ToUpper(s)
}
