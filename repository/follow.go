package repository

import "github.com/gofrs/uuid"

// FollowCounts フォロワー数とフォロー数
type FollowCounts struct {
	Followers int64
	Following int64
}

// FollowRepository フォローリポジトリ
type FollowRepository interface {
	// ToggleFollow followerIDのユーザーによるfollowingIDのユーザーのフォロー状態を反転します
	//
	// 成功した場合、反転後のフォロー状態とnilを返します。
	// 自分自身を指定した場合、ArgumentErrorを返します。
	// 存在しないユーザーを指定した場合、ErrNotFoundを返します。
	// 引数にuuid.Nilを指定した場合、ErrNilIDを返します。
	// DBによるエラーを返すことがあります。
	ToggleFollow(followerID, followingID uuid.UUID) (bool, error)
	// IsFollowing followerIDのユーザーがfollowingIDのユーザーをフォローしているかどうかを返します
	//
	// 引数にuuid.Nilを指定した場合、falseとnilを返します。
	// DBによるエラーを返すことがあります。
	IsFollowing(followerID, followingID uuid.UUID) (bool, error)
	// GetFollowCounts 指定したユーザーのフォロワー数とフォロー数を取得します
	//
	// 存在しないユーザーを指定した場合は0を返します。
	// DBによるエラーを返すことがあります。
	GetFollowCounts(userID uuid.UUID) (FollowCounts, error)
}
