package gorm

import (
	"github.com/gofrs/uuid"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
)

// GetBoard implements BoardRepository interface.
func (repo *Repository) GetBoard(id uuid.UUID) (*model.Board, error) {
	if id == uuid.Nil {
		return nil, repository.ErrNotFound
	}
	var b model.Board
	if err := repo.db.First(&b, &model.Board{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return &b, nil
}

// GetUserBoards implements BoardRepository interface.
func (repo *Repository) GetUserBoards(userID uuid.UUID) ([]*model.BoardWithSummary, error) {
	result := make([]*model.BoardWithSummary, 0)
	if userID == uuid.Nil {
		return result, nil
	}

	var boards []*model.Board
	if err := repo.db.
		Where(&model.Board{UserID: userID}).
		Order("created_at DESC, id DESC").
		Find(&boards).
		Error; err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}

	var counts []struct {
		BoardID uuid.UUID
		Count   int64
	}
	if err := repo.db.
		Model(&model.Pin{}).
		Select("board_id, COUNT(*) AS count").
		Where("board_id IN ?", ids).
		Group("board_id").
		Scan(&counts).
		Error; err != nil {
		return nil, err
	}
	countMap := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		countMap[c.BoardID] = c.Count
	}

	// 各ボードで最も古いピンのIDを一度に取得する
	var firstIDs []uuid.UUID
	if err := repo.db.
		Table("(?) AS ranked", repo.db.
			Model(&model.Pin{}).
			Select("id, ROW_NUMBER() OVER (PARTITION BY board_id ORDER BY created_at ASC, id ASC) AS rn").
			Where("board_id IN ?", ids)).
		Where("rn = 1").
		Pluck("id", &firstIDs).
		Error; err != nil {
		return nil, err
	}

	firstPins := make(map[uuid.UUID]*model.Pin, len(firstIDs))
	if len(firstIDs) > 0 {
		var pins []*model.Pin
		if err := repo.db.
			Preload("Tags", orderTags).
			Where("id IN ?", firstIDs).
			Find(&pins).
			Error; err != nil {
			return nil, err
		}
		for _, p := range pins {
			if p.BoardID.Valid {
				firstPins[p.BoardID.UUID] = p
			}
		}
	}

	for _, b := range boards {
		result = append(result, &model.BoardWithSummary{
			Board:    *b,
			PinCount: countMap[b.ID],
			FirstPin: firstPins[b.ID],
		})
	}
	return result, nil
}
