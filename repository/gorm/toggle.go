package gorm

import (
	"gorm.io/gorm"

	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/utils/gormutil"
)

// toggleRecord 一意制約を持つrecordが存在すれば削除し、存在しなければ作成します
//
// 反転後に存在するかどうかを返します。並行するリクエストによって既に作成されていた場合は存在するものとして扱います。
// 外部キー制約に違反した場合はErrNotFoundを返します。
func toggleRecord(db *gorm.DB, record interface{}, query string, args ...interface{}) (active bool, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(query, args...).Delete(record)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			active = false
			return nil
		}

		if err := tx.Create(record).Error; err != nil {
			switch {
			case gormutil.IsMySQLDuplicatedRecordErr(err):
				active = true
				return nil
			case gormutil.IsMySQLForeignKeyConstraintFailsError(err):
				return repository.ErrNotFound
			default:
				return err
			}
		}
		active = true
		return nil
	})
	return
}
