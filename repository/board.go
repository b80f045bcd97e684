package repository

import (
	"github.com/gofrs/uuid"

	"github.com/traPtitech/pinboard/model"
)

// BoardRepository ボードリポジトリ
type BoardRepository interface {
	// GetBoard 指定したIDのボードを取得します
	//
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetBoard(id uuid.UUID) (*model.Board, error)
	// GetUserBoards 指定したユーザーのボードを新しい順に取得します
	//
	// 各ボードにはピン数と最も古いピンが付与されます。
	// 存在しないユーザーを指定した場合は空配列とnilを返します。
	// DBによるエラーを返すことがあります。
	GetUserBoards(userID uuid.UUID) ([]*model.BoardWithSummary, error)
}
