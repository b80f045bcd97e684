package repository

// Repository データリポジトリ
type Repository interface {
	UserRepository
	FollowRepository
	PinRepository
	BoardRepository
	InteractionRepository
	CommentRepository
}
