package model

import (
	"time"

	"github.com/gofrs/uuid"
)

// Follow フォロー関係構造体
//
// (FollowerID, FollowingID)の組は一意です
type Follow struct {
	FollowerID  uuid.UUID `gorm:"type:char(36);not null;primaryKey"`
	FollowingID uuid.UUID `gorm:"type:char(36);not null;primaryKey;index"`
	CreatedAt   time.Time `gorm:"precision:6"`

	Follower  *User `gorm:"constraint:follows_follower_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:FollowerID"`
	Following *User `gorm:"constraint:follows_following_id_users_id_foreign,OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:FollowingID"`
}

// TableName Follow構造体のテーブル名
func (*Follow) TableName() string {
	return "follows"
}
