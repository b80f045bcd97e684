package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNilID 汎用エラー 引数のIDがNilです
	ErrNilID = errors.New("nil id")
	// ErrNotFound 汎用エラー 見つかりません
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists 汎用エラー 既に存在しています
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden 汎用エラー 禁止されています
	ErrForbidden = errors.New("forbidden")
)

// ArgumentError 引数エラー
type ArgumentError struct {
	FieldName string
	Message   string
}

// Error Messageを返します
func (ae *ArgumentError) Error() string {
	return ae.Message
}

// ArgError 引数エラーを生成します
func ArgError(field, message string) *ArgumentError {
	return &ArgumentError{FieldName: field, Message: message}
}

// IsArgError 引数エラーかどうか
func IsArgError(err error) bool {
	if err == nil {
		return false
	}
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// Field エラーが発生した引数名とメッセージをまとめた文字列を返します
func (ae *ArgumentError) Field() string {
	return fmt.Sprintf("%s: %s", ae.FieldName, ae.Message)
}
