package session

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// CookieName セッションクッキー名
	CookieName = "token"
	// DefaultMaxAge セッションの既定の有効期間
	DefaultMaxAge = 30 * 24 * time.Hour
)

var (
	// ErrSessionNotFound セッションが存在しません
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidToken セッショントークンが不正です
	ErrInvalidToken = errors.New("invalid session token")
)

// Session ログインセッション
type Session interface {
	Token() string
	UserID() uuid.UUID
	IssuedAt() time.Time
}

// Store セッションストア
type Store interface {
	// GetSession リクエストのクッキーからセッションを取得します
	//
	// クッキーが無い場合はErrSessionNotFoundを、トークンが不正な場合はErrInvalidTokenを返します。
	GetSession(c echo.Context) (Session, error)
	// IssueSession userIDのセッションを発行してクッキーにセットします
	IssueSession(c echo.Context, userID uuid.UUID) (Session, error)
	// RevokeSession セッションクッキーを削除します
	RevokeSession(c echo.Context) error
}

// Config セッション設定
type Config struct {
	// Secret トークン署名鍵
	Secret []byte
	// MaxAge セッションの有効期間
	MaxAge time.Duration
	// Secure クッキーにSecure属性を付与するかどうか
	Secure bool
}
