package repository

import (
	"github.com/gofrs/uuid"

	"github.com/traPtitech/pinboard/model"
)

// CreateUserArgs ユーザー作成引数
type CreateUserArgs struct {
	Username    string
	DisplayName string
	Email       string
	// Password 平文のパスワード。保存時にハッシュ化されます
	Password string
	Img      string
}

// UserRepository ユーザーリポジトリ
type UserRepository interface {
	// CreateUser ユーザーを作成します
	//
	// 成功した場合、ユーザーとnilを返します。
	// ユーザー名またはメールアドレスが既に使われている場合、ErrAlreadyExistsを返します。
	// DBによるエラーを返すことがあります。
	CreateUser(args CreateUserArgs) (*model.User, error)
	// GetUser 指定したIDのユーザーを取得します
	//
	// 成功した場合、ユーザーとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetUser(id uuid.UUID) (*model.User, error)
	// GetUserByName 指定したユーザー名のユーザーを取得します
	//
	// 成功した場合、ユーザーとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetUserByName(username string) (*model.User, error)
	// GetUserByEmail 指定したメールアドレスのユーザーを取得します
	//
	// 成功した場合、ユーザーとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetUserByEmail(email string) (*model.User, error)
}
