package herror

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/blendle/zapdriver"
	"go.uber.org/zap"
)

// InternalError 内部エラー
type InternalError struct {
	// Err エラー
	Err error
	// Stack スタックトレース
	Stack []byte
	// Fields zapログ用フィールド
	Fields []zap.Field
	// Panic パニックが発生したかどうか
	Panic bool
}

func (i *InternalError) Error() string {
	if i.Panic {
		return fmt.Sprintf("[Panic] %s\n%s", i.Err.Error(), i.Stack)
	}
	return fmt.Sprintf("%s\n%s", i.Err.Error(), i.Stack)
}

func (i *InternalError) Unwrap() error {
	return i.Err
}

// InternalServerError 500エラーを生成します。エラー内容はログにのみ出力されます
func InternalServerError(err error) error {
	return &InternalError{
		Err:    err,
		Stack:  debug.Stack(),
		Fields: []zap.Field{zapdriver.ErrorReport(runtime.Caller(1)), zap.Error(err)},
	}
}

// Panic パニックから500エラーを生成します
func Panic(err error) error {
	return &InternalError{
		Err:    err,
		Stack:  debug.Stack(),
		Fields: []zap.Field{zapdriver.ErrorReport(runtime.Caller(3)), zap.Error(err)},
		Panic:  true,
	}
}

// ExposedError 原因のエラーメッセージをレスポンスに含める500エラー
type ExposedError struct {
	// Message レスポンスのメッセージ
	Message string
	// Err エラー
	Err error
	// Fields zapログ用フィールド
	Fields []zap.Field
}

func (e *ExposedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
}

func (e *ExposedError) Unwrap() error {
	return e.Err
}

// InternalServerErrorWithCause 原因のエラーメッセージをレスポンスのerrorフィールドに含める500エラーを生成します
func InternalServerErrorWithCause(message string, err error) error {
	return &ExposedError{
		Message: message,
		Err:     err,
		Fields:  []zap.Field{zapdriver.ErrorReport(runtime.Caller(1)), zap.Error(err)},
	}
}
