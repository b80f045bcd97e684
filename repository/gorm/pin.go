package gorm

import (
	"errors"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/traPtitech/pinboard/event"
	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/utils/gormutil"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CreatePin implements PinRepository interface.
func (repo *Repository) CreatePin(args repository.CreatePinArgs) (*model.Pin, error) {
	if args.UserID == uuid.Nil {
		return nil, repository.ErrNilID
	}

	pin := &model.Pin{
		ID:          uuid.Must(uuid.NewV7()),
		UserID:      args.UserID,
		Media:       args.Media,
		Width:       args.Width,
		Height:      args.Height,
		Title:       args.Title,
		Description: args.Description,
		Link:        args.Link,
	}
	for i, name := range lo.Uniq(args.Tags) {
		pin.Tags = append(pin.Tags, model.PinTag{PinID: pin.ID, Name: name, Position: i})
	}

	var board *model.Board
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		switch {
		case len(args.NewBoardTitle) > 0:
			board = &model.Board{
				ID:     uuid.Must(uuid.NewV7()),
				UserID: args.UserID,
				Title:  args.NewBoardTitle,
			}
			if err := tx.Create(board).Error; err != nil {
				return err
			}
			pin.BoardID = uuid.NullUUID{UUID: board.ID, Valid: true}
		case args.BoardID.Valid:
			var b model.Board
			if err := tx.First(&b, &model.Board{ID: args.BoardID.UUID}).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return repository.ArgError("board", "board not found")
				}
				return err
			}
			if b.UserID != args.UserID {
				return repository.ErrForbidden
			}
			pin.BoardID = args.BoardID
		}

		return tx.Create(pin).Error
	})
	if err != nil {
		return nil, err
	}

	if board != nil {
		repo.hub.Publish(hub.Message{
			Name: event.BoardCreated,
			Fields: hub.Fields{
				"board_id": board.ID,
				"board":    board,
			},
		})
	}
	repo.hub.Publish(hub.Message{
		Name: event.PinCreated,
		Fields: hub.Fields{
			"pin_id": pin.ID,
			"pin":    pin,
		},
	})
	return pin, nil
}

// GetPin implements PinRepository interface.
func (repo *Repository) GetPin(id uuid.UUID, withUser bool) (*model.Pin, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNotFound
	}
	tx := repo.db.Preload("Tags", orderTags)
	if withUser {
		tx = tx.Preload("User")
	}
	var pin model.Pin
	if err := tx.First(&pin, &model.Pin{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return &pin, nil
}

// GetPins implements PinRepository interface.
func (repo *Repository) GetPins(query repository.PinsQuery) ([]*model.Pin, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = repository.PinsPageSize
	}

	tx := repo.db.Model(&model.Pin{}).Preload("Tags", orderTags)
	switch {
	case len(query.Search) > 0:
		tagged := repo.db.Model(&model.PinTag{}).Select("pin_id").Where("name = ?", query.Search)
		tx = tx.Where("LOWER(pins.title) LIKE ? OR pins.id IN (?)", "%"+likeEscaper.Replace(strings.ToLower(query.Search))+"%", tagged)
	case query.UserID.Valid:
		tx = tx.Where("pins.user_id = ?", query.UserID.UUID)
	case query.BoardID.Valid:
		tx = tx.Where("pins.board_id = ?", query.BoardID.UUID)
	}

	pins := make([]*model.Pin, 0, limit)
	err := tx.
		Order("pins.created_at DESC, pins.id DESC").
		Scopes(gormutil.Page(query.Page, limit)).
		Find(&pins).
		Error
	return pins, err
}

// PinExists implements PinRepository interface.
func (repo *Repository) PinExists(id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	return gormutil.RecordExists(repo.db, &model.Pin{ID: id})
}

func orderTags(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
