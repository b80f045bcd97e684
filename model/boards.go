package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// Board ボード構造体
type Board struct {
	ID        uuid.UUID `gorm:"type:char(36);not null;primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index:idx_boards_user_id_created_at,priority:1"`
	Title     string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"precision:6;index:idx_boards_user_id_created_at,priority:2"`

	User *User `gorm:"constraint:boards_user_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName Board構造体のテーブル名
func (*Board) TableName() string {
	return "boards"
}

// BoardWithSummary ピン数と最初のピンを付与したボード
type BoardWithSummary struct {
	Board
	PinCount int64
	FirstPin *Pin
}
