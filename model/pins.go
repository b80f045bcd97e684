package model

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/guregu/null"
)

// Pin ピン構造体
type Pin struct {
	ID          uuid.UUID     `gorm:"type:char(36);not null;primaryKey"`
	UserID      uuid.UUID     `gorm:"type:char(36);not null;index:idx_pins_user_id_created_at,priority:1"`
	BoardID     uuid.NullUUID `gorm:"type:char(36);index:idx_pins_board_id_created_at,priority:1"`
	Media       string        `gorm:"type:text;not null"`
	Width       int           `gorm:"type:int;not null"`
	Height      int           `gorm:"type:int;not null"`
	Title       string        `gorm:"type:varchar(100);not null"`
	Description string        `gorm:"type:text;not null"`
	Link        null.String   `gorm:"type:text"`
	CreatedAt   time.Time     `gorm:"precision:6;index;index:idx_pins_user_id_created_at,priority:2;index:idx_pins_board_id_created_at,priority:2"`

	Tags  []PinTag `gorm:"constraint:pin_tags_pin_id_pins_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:PinID"`
	User  *User    `gorm:"constraint:pins_user_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"`
	Board *Board   `gorm:"constraint:pins_board_id_boards_id_foreign,OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName Pin構造体のテーブル名
func (*Pin) TableName() string {
	return "pins"
}

// TagNames タグ名の配列を返します
func (p *Pin) TagNames() []string {
	names := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		names[i] = t.Name
	}
	return names
}

// PinTag ピンのタグ構造体
type PinTag struct {
	PinID    uuid.UUID `gorm:"type:char(36);not null;primaryKey"`
	Name     string    `gorm:"type:varchar(64);not null;primaryKey;index"`
	Position int       `gorm:"type:int;not null;default:0"`
}

// TableName PinTag構造体のテーブル名
func (*PinTag) TableName() string {
	return "pin_tags"
}
