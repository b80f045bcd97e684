package model

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPassword パスワードが一致しません
var ErrInvalidPassword = errors.New("invalid password")

// User ユーザー構造体
type User struct {
	ID          uuid.UUID `gorm:"type:char(36);not null;primaryKey"`
	Username    string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	DisplayName string    `gorm:"type:varchar(32);not null"`
	Email       string    `gorm:"type:varchar(254);not null;uniqueIndex"`
	Password    string    `gorm:"type:char(60);not null"`
	Img         string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"precision:6"`
	UpdatedAt   time.Time `gorm:"precision:6"`
}

// TableName User構造体のテーブル名
func (*User) TableName() string {
	return "users"
}

// HashPassword パスワードをbcryptでハッシュ化します
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AuthenticatePassword パスワードを検証します
func (u *User) AuthenticatePassword(password string) error {
	if len(u.Password) == 0 {
		return ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
