package gorm

import (
	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"

	"github.com/traPtitech/pinboard/event"
	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/utils/gormutil"
)

// CreateComment implements CommentRepository interface.
func (repo *Repository) CreateComment(userID, pinID uuid.UUID, description string) (*model.Comment, error) {
	if userID == uuid.Nil || pinID == uuid.Nil {
		return nil, repository.ErrNilID
	}

	c := &model.Comment{
		ID:          uuid.Must(uuid.NewV7()),
		PinID:       pinID,
		UserID:      userID,
		Description: description,
	}
	if err := repo.db.Create(c).Error; err != nil {
		if gormutil.IsMySQLForeignKeyConstraintFailsError(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	user, err := repo.GetUser(userID)
	if err != nil {
		return nil, err
	}
	c.User = user

	repo.hub.Publish(hub.Message{
		Name: event.CommentCreated,
		Fields: hub.Fields{
			"comment_id": c.ID,
			"pin_id":     c.PinID,
			"comment":    c,
		},
	})
	return c, nil
}

// GetPinComments implements CommentRepository interface.
func (repo *Repository) GetPinComments(pinID uuid.UUID) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if pinID == uuid.Nil {
		return comments, nil
	}
	err := repo.db.
		Preload("User").
		Where(&model.Comment{PinID: pinID}).
		Order("created_at DESC, id DESC").
		Find(&comments).
		Error
	return comments, err
}
