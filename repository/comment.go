package repository

import (
	"github.com/gofrs/uuid"

	"github.com/traPtitech/pinboard/model"
)

// CommentRepository コメントリポジトリ
type CommentRepository interface {
	// CreateComment ピンにコメントを投稿します
	//
	// 成功した場合、投稿者を含むコメントとnilを返します。
	// 存在しないピンを指定した場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	// DBによるエラーを返すことがあります。
	CreateComment(userID, pinID uuid.UUID, description string) (*model.Comment, error)
	// GetPinComments ピンのコメントを新しい順に投稿者付きで取得します
	//
	// 存在しないピンを指定した場合は空配列とnilを返します。
	// DBによるエラーを返すことがあります。
	GetPinComments(pinID uuid.UUID) ([]*model.Comment, error)
}
