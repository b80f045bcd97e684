package validator

import (
	"errors"
	"regexp"
	"strings"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofrs/uuid"
)

// PasswordRule パスワードバリデーションルール
var PasswordRule = []vd.Rule{
	is.PrintableASCII,
	vd.RuneLength(8, 64),
}

// PasswordRuleRequired パスワードバリデーションルール with Required
var PasswordRuleRequired = append([]vd.Rule{
	vd.Required,
}, PasswordRule...)

// UserNameRule ユーザー名バリデーションルール
var UserNameRule = []vd.Rule{
	vd.Match(regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)).Error("must contain [a-zA-Z0-9_-] only"),
	vd.RuneLength(1, 32),
}

// UserNameRuleRequired ユーザー名バリデーションルール with Required
var UserNameRuleRequired = append([]vd.Rule{
	vd.Required,
}, UserNameRule...)

// DisplayNameRule 表示名バリデーションルール
var DisplayNameRule = []vd.Rule{
	vd.RuneLength(1, 32),
}

// EmailRule メールアドレスバリデーションルール
var EmailRule = []vd.Rule{
	is.EmailFormat,
	vd.RuneLength(3, 254),
}

// PinTitleRuleRequired ピンタイトルバリデーションルール with Required
var PinTitleRuleRequired = []vd.Rule{
	vd.Required,
	vd.RuneLength(1, 100),
}

// PinDescriptionRule ピン説明バリデーションルール
var PinDescriptionRule = []vd.Rule{
	vd.RuneLength(0, 500),
}

// PinLinkRule ピンリンクバリデーションルール
var PinLinkRule = []vd.Rule{
	is.URL,
	vd.RuneLength(0, 2048),
}

// BoardTitleRule ボードタイトルバリデーションルール
var BoardTitleRule = []vd.Rule{
	vd.RuneLength(1, 50),
}

// PinTagsRule カンマ区切りタグ文字列バリデーションルール
var PinTagsRule = []vd.Rule{
	vd.RuneLength(0, 512),
	vd.By(func(value interface{}) error {
		s, _ := value.(string)
		if len(SplitTags(s)) > 20 {
			return errors.New("must have at most 20 tags")
		}
		return nil
	}),
}

// CommentRuleRequired コメント本文バリデーションルール with Required
var CommentRuleRequired = []vd.Rule{
	vd.Required,
	vd.RuneLength(1, 500),
}

// HexColorRule 16進カラーコードバリデーションルール。先頭の#は省略できます
var HexColorRule = []vd.Rule{
	vd.Match(regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)).Error("must be a hex color code"),
}

// NotNilUUID uuid.Nilでないことを検証するルール
var NotNilUUID = vd.By(func(value interface{}) error {
	switch v := value.(type) {
	case uuid.UUID:
		if v == uuid.Nil {
			return errors.New("must not be nil uuid")
		}
	case string:
		u, err := uuid.FromString(v)
		if err != nil || u == uuid.Nil {
			return errors.New("must be a valid uuid")
		}
	}
	return nil
})

// SplitTags カンマ区切りの文字列をトリムしたタグ配列に分割します。空要素は除外されます
func SplitTags(s string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); len(t) > 0 {
			tags = append(tags, t)
		}
	}
	return tags
}
