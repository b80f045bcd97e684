package repository

import (
	"github.com/gofrs/uuid"
	"github.com/guregu/null"

	"github.com/traPtitech/pinboard/model"
)

// PinsPageSize ピン一覧の1ページあたりの件数
const PinsPageSize = 21

// CreatePinArgs ピン作成引数
type CreatePinArgs struct {
	UserID uuid.UUID
	// BoardID 既存のボードに追加する場合に指定します
	BoardID uuid.NullUUID
	// NewBoardTitle 空でない場合、このタイトルのボードを新規作成してピンを追加します。BoardIDより優先されます
	NewBoardTitle string
	Title         string
	Description   string
	Link          null.String
	Tags          []string
	Media         string
	Width         int
	Height        int
}

// PinsQuery ピン一覧取得クエリ
//
// Search, UserID, BoardIDはこの優先順位で排他的に適用されます
type PinsQuery struct {
	Search  string
	UserID  uuid.NullUUID
	BoardID uuid.NullUUID
	// Page 0から始まるページ番号
	Page int
	// Limit 0以下の場合はPinsPageSizeになります
	Limit int
}

// PinRepository ピンリポジトリ
type PinRepository interface {
	// CreatePin ピンを作成します
	//
	// NewBoardTitleが指定された場合、ボードの作成とピンの作成は一つのトランザクションで行われます。
	// 成功した場合、ピンとnilを返します。
	// 存在しないボードを指定した場合、ArgumentErrorを返します。
	// 他人のボードを指定した場合、ErrForbiddenを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	// DBによるエラーを返すことがあります。
	CreatePin(args CreatePinArgs) (*model.Pin, error)
	// GetPin 指定したIDのピンを取得します
	//
	// withUserがtrueの場合、作成者も取得します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetPin(id uuid.UUID, withUser bool) (*model.Pin, error)
	// GetPins クエリに一致するピンを新しい順に取得します
	//
	// 成功した場合、ピンの配列とnilを返します。
	// DBによるエラーを返すことがあります。
	GetPins(query PinsQuery) ([]*model.Pin, error)
	// PinExists 指定したIDのピンが存在するかどうかを返します
	//
	// DBによるエラーを返すことがあります。
	PinExists(id uuid.UUID) (bool, error)
}
