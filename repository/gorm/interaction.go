package gorm

import (
	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"

	"github.com/traPtitech/pinboard/event"
	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/utils/gormutil"
)

// ToggleInteraction implements InteractionRepository interface.
func (repo *Repository) ToggleInteraction(t model.InteractionType, userID, pinID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || pinID == uuid.Nil {
		return false, repository.ErrNilID
	}

	var record interface{}
	switch t {
	case model.InteractionLike:
		record = &model.Like{PinID: pinID, UserID: userID}
	case model.InteractionSave:
		record = &model.Save{PinID: pinID, UserID: userID}
	default:
		return false, repository.ArgError("type", "type must be like or save")
	}

	active, err := toggleRecord(repo.db, record, "pin_id = ? AND user_id = ?", pinID, userID)
	if err != nil {
		return false, err
	}
	repo.hub.Publish(hub.Message{
		Name: event.PinInteractionToggled,
		Fields: hub.Fields{
			"pin_id":  pinID,
			"user_id": userID,
			"type":    t,
			"active":  active,
		},
	})
	return active, nil
}

// GetInteractionState implements InteractionRepository interface.
func (repo *Repository) GetInteractionState(pinID, userID uuid.UUID) (*model.InteractionState, error) {
	var (
		state model.InteractionState
		err   error
	)
	if pinID == uuid.Nil {
		return &state, nil
	}

	state.LikeCount, err = gormutil.Count(repo.db.Model(&model.Like{}).Where("pin_id = ?", pinID))
	if err != nil {
		return nil, err
	}
	if userID == uuid.Nil {
		return &state, nil
	}

	state.IsLiked, err = gormutil.RecordExists(repo.db, &model.Like{PinID: pinID, UserID: userID})
	if err != nil {
		return nil, err
	}
	state.IsSaved, err = gormutil.RecordExists(repo.db, &model.Save{PinID: pinID, UserID: userID})
	if err != nil {
		return nil, err
	}
	return &state, nil
}
