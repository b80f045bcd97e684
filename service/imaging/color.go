package imaging

import (
	"image/color"
	"strconv"
)

// ParseHexColor #を除いた3, 6, 8桁の16進カラーコードを読み込みます
func ParseHexColor(s string) (color.NRGBA, error) {
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]}) + "FF"
	case 6:
		s += "FF"
	case 8:
	default:
		return color.NRGBA{}, ErrInvalidColor
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, ErrInvalidColor
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
