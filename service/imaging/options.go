package imaging

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const (
	// SizeOriginal 元画像の縦横比を基準にするcanvasサイズ
	SizeOriginal = "original"
	// OrientationPortrait 縦長
	OrientationPortrait = "portrait"
	// OrientationLandscape 横長
	OrientationLandscape = "landscape"

	// clientCanvasWidth クライアントのキャンバスの論理幅
	clientCanvasWidth = 375
	// fontScale クライアントのフォントサイズから出力画像のフォントサイズへの倍率
	fontScale = 2.1
)

// CanvasOptions クライアントのキャンバス設定
type CanvasOptions struct {
	// Size "original" または "W:H" 形式の縦横比
	Size            string  `json:"size"`
	Orientation     string  `json:"orientation"`
	BackgroundColor string  `json:"backgroundColor"`
	Height          float64 `json:"height"`
}

// TextOptions クライアントのテキストオーバーレイ設定
type TextOptions struct {
	Text     string  `json:"text"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	FontSize float64 `json:"fontSize"`
	Color    string  `json:"color"`
}

// ParseCanvasOptions JSON文字列からCanvasOptionsを読み込みます。空文字列の場合はゼロ値を返します
func ParseCanvasOptions(s string) (CanvasOptions, error) {
	var o CanvasOptions
	if len(strings.TrimSpace(s)) == 0 {
		return o, nil
	}
	err := jsoniter.ConfigFastest.UnmarshalFromString(s, &o)
	return o, err
}

// ParseTextOptions JSON文字列からTextOptionsを読み込みます。空文字列の場合はゼロ値を返します
func ParseTextOptions(s string) (TextOptions, error) {
	var o TextOptions
	if len(strings.TrimSpace(s)) == 0 {
		return o, nil
	}
	err := jsoniter.ConfigFastest.UnmarshalFromString(s, &o)
	return o, err
}
