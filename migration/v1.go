package migration

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// v1 コメントテーブルへの (pin_id, created_at) の複合インデックスの追加
func v1() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "1",
		Migrate: func(db *gorm.DB) error {
			if db.Migrator().HasIndex("comments", "idx_comments_pin_id_created_at") {
				return nil
			}
			if err := db.Exec("CREATE INDEX idx_comments_pin_id_created_at ON comments (pin_id, created_at)").Error; err != nil {
				return err
			}
			if db.Migrator().HasIndex("comments", "idx_comments_pin_id") {
				return db.Exec("DROP INDEX idx_comments_pin_id ON comments").Error
			}
			return nil
		},
		Rollback: func(db *gorm.DB) error {
			if err := db.Exec("CREATE INDEX idx_comments_pin_id ON comments (pin_id)").Error; err != nil {
				return err
			}
			return db.Exec("DROP INDEX idx_comments_pin_id_created_at ON comments").Error
		},
	}
}
