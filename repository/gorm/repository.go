package gorm

import (
	"github.com/leandro-lugaresi/hub"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/traPtitech/pinboard/migration"
	"github.com/traPtitech/pinboard/repository"
)

// Repository リポジトリ実装
type Repository struct {
	db     *gorm.DB
	hub    *hub.Hub
	logger *zap.Logger
	*userRepository
}

// NewGormRepository リポジトリ実装を初期化して生成します
//
// doMigrationがtrueの場合、データベースマイグレーションを実行します
func NewGormRepository(db *gorm.DB, hub *hub.Hub, logger *zap.Logger, doMigration bool) (repository.Repository, bool, error) {
	repo := &Repository{
		db:             db,
		hub:            hub,
		logger:         logger.Named("repository"),
		userRepository: makeUserRepository(db, hub),
	}
	if doMigration {
		init, err := migration.Migrate(db)
		if err != nil {
			return nil, false, err
		}
		return repo, init, nil
	}
	return repo, false, nil
}
