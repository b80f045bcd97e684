package event

const (
	// UserCreated ユーザーが作成された
	//	Fields:
	//		user_id: uuid.UUID
	//		user: *model.User
	UserCreated = "user.created"
	// UserFollowToggled ユーザーのフォロー状態が変更された
	//	Fields:
	//		follower_id: uuid.UUID
	//		following_id: uuid.UUID
	//		active: bool
	UserFollowToggled = "user.follow.toggled"

	// PinCreated ピンが作成された
	//	Fields:
	//		pin_id: uuid.UUID
	//		pin: *model.Pin
	PinCreated = "pin.created"
	// PinInteractionToggled ピンのいいね・保存状態が変更された
	//	Fields:
	//		pin_id: uuid.UUID
	//		user_id: uuid.UUID
	//		type: model.InteractionType
	//		active: bool
	PinInteractionToggled = "pin.interaction.toggled"

	// BoardCreated ボードが作成された
	//	Fields:
	//		board_id: uuid.UUID
	//		board: *model.Board
	BoardCreated = "board.created"

	// CommentCreated コメントが投稿された
	//	Fields:
	//		comment_id: uuid.UUID
	//		pin_id: uuid.UUID
	//		comment: *model.Comment
	CommentCreated = "comment.created"
)

// AllTopics 全てのイベントトピック
var AllTopics = []string{
	UserCreated,
	UserFollowToggled,
	PinCreated,
	PinInteractionToggled,
	BoardCreated,
	CommentCreated,
}
