package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// InteractionType ピンに対するインタラクションの種類
type InteractionType string

const (
	// InteractionLike いいね
	InteractionLike InteractionType = "like"
	// InteractionSave 保存
	InteractionSave InteractionType = "save"
)

// Valid 定義済みの種類かどうか
func (t InteractionType) Valid() bool {
	return t == InteractionLike || t == InteractionSave
}

// Like いいね構造体
type Like struct {
	PinID     uuid.UUID `gorm:"type:char(36);not null;primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;primaryKey;index"`
	CreatedAt time.Time `gorm:"precision:6"`

	Pin  *Pin  `gorm:"constraint:likes_pin_id_pins_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"`
	User *User `gorm:"constraint:likes_user_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName Like構造体のテーブル名
func (*Like) TableName() string {
	return "likes"
}

// Save 保存構造体
type Save struct {
	PinID     uuid.UUID `gorm:"type:char(36);not null;primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;primaryKey;index"`
	CreatedAt time.Time `gorm:"precision:6"`

	Pin  *Pin  `gorm:"constraint:saves_pin_id_pins_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"`
	User *User `gorm:"constraint:saves_user_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName Save構造体のテーブル名
func (*Save) TableName() string {
	return "saves"
}

// InteractionState ユーザーから見たピンのインタラクション状態
type InteractionState struct {
	LikeCount int64
	IsLiked   bool
	IsSaved   bool
}
