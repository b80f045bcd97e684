package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"

	"github.com/traPtitech/pinboard/model"
)

// Migrations 全てのデータベースマイグレーション
//
// 新たなマイグレーションを行う場合は、この配列の末尾に必ず追加すること
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		v1(), // コメントテーブルへの (pin_id, created_at) の複合インデックスの追加
	}
}

// AllTables 最新のスキーマの全テーブルモデル
//
// 最新のマイグレーションの状態と常に一致させること
// **順番注意**
func AllTables() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Board{},
		&model.Pin{},
		&model.PinTag{},
		&model.Follow{},
		&model.Like{},
		&model.Save{},
		&model.Comment{},
	}
}
