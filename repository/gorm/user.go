package gorm

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/motoki317/sc"
	"gorm.io/gorm"

	"github.com/traPtitech/pinboard/event"
	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/utils/gormutil"
)

var _ repository.UserRepository = (*userRepository)(nil)

type userRepository struct {
	db    *gorm.DB
	hub   *hub.Hub
	users *sc.Cache[uuid.UUID, *model.User]
}

func makeUserRepository(db *gorm.DB, hub *hub.Hub) *userRepository {
	r := &userRepository{db: db, hub: hub}
	// ユーザー情報はAPIから更新されないため長めにキャッシュする
	r.users = sc.NewMust(r.getUser, 1*time.Hour, 1*time.Hour)
	return r
}

func (r *userRepository) getUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, &model.User{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return &user, nil
}

// CreateUser implements UserRepository interface.
func (r *userRepository) CreateUser(args repository.CreateUserArgs) (*model.User, error) {
	hashed, err := model.HashPassword(args.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:          uuid.Must(uuid.NewV7()),
		Username:    args.Username,
		DisplayName: args.DisplayName,
		Email:       args.Email,
		Password:    hashed,
		Img:         args.Img,
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if exist, err := gormutil.RecordExists(tx, &model.User{Username: user.Username}); err != nil {
			return err
		} else if exist {
			return repository.ErrAlreadyExists
		}
		if exist, err := gormutil.RecordExists(tx, &model.User{Email: user.Email}); err != nil {
			return err
		} else if exist {
			return repository.ErrAlreadyExists
		}

		return tx.Create(user).Error
	})
	if err != nil {
		// 並行して同じ名前で作成された場合
		if gormutil.IsMySQLDuplicatedRecordErr(err) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, err
	}
	r.hub.Publish(hub.Message{
		Name: event.UserCreated,
		Fields: hub.Fields{
			"user_id": user.ID,
			"user":    user,
		},
	})
	return user, nil
}

// GetUser implements UserRepository interface.
func (r *userRepository) GetUser(id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNotFound
	}
	return r.users.Get(context.Background(), id)
}

// GetUserByName implements UserRepository interface.
func (r *userRepository) GetUserByName(username string) (*model.User, error) {
	if len(username) == 0 {
		return nil, repository.ErrNotFound
	}
	var user model.User
	if err := r.db.First(&user, &model.User{Username: username}).Error; err != nil {
		return nil, convertError(err)
	}
	return &user, nil
}

// GetUserByEmail implements UserRepository interface.
func (r *userRepository) GetUserByEmail(email string) (*model.User, error) {
	if len(email) == 0 {
		return nil, repository.ErrNotFound
	}
	var user model.User
	if err := r.db.First(&user, &model.User{Email: email}).Error; err != nil {
		return nil, convertError(err)
	}
	return &user, nil
}
