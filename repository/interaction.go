package repository

import (
	"github.com/gofrs/uuid"

	"github.com/traPtitech/pinboard/model"
)

// InteractionRepository いいね・保存リポジトリ
type InteractionRepository interface {
	// ToggleInteraction userIDのユーザーのpinIDのピンに対するいいね、または保存の状態を反転します
	//
	// 成功した場合、反転後の状態とnilを返します。
	// 未定義の種類を指定した場合、ArgumentErrorを返します。
	// 存在しないピンを指定した場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	// DBによるエラーを返すことがあります。
	ToggleInteraction(t model.InteractionType, userID, pinID uuid.UUID) (bool, error)
	// GetInteractionState pinIDのピンのいいね数と、userIDのユーザーのいいね・保存状態を取得します
	//
	// userIDにuuid.Nilを指定した場合、IsLikedとIsSavedはfalseになります。
	// DBによるエラーを返すことがあります。
	GetInteractionState(pinID, userID uuid.UUID) (*model.InteractionState, error)
}
