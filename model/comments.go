package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// Comment コメント構造体
type Comment struct {
	ID          uuid.UUID `gorm:"type:char(36);not null;primaryKey"`
	PinID       uuid.UUID `gorm:"type:char(36);not null;index:idx_comments_pin_id_created_at,priority:1"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"precision:6;index:idx_comments_pin_id_created_at,priority:2"`

	Pin  *Pin  `gorm:"constraint:comments_pin_id_pins_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"`
	User *User `gorm:"constraint:comments_user_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName Comment構造体のテーブル名
func (*Comment) TableName() string {
	return "comments"
}
