package v1

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/guregu/null"
	"github.com/samber/lo"

	"github.com/traPtitech/pinboard/model"
)

// Me 自分自身のユーザー情報
type Me struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Img         string    `json:"img"`
	CreatedAt   time.Time `json:"createdAt"`
}

func formatMe(user *model.User) *Me {
	return &Me{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Img:         user.Img,
		CreatedAt:   user.CreatedAt,
	}
}

// UserSummary ピンやコメントに付与する投稿者情報
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Img         string    `json:"img"`
}

func formatUserSummary(user *model.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Img:         user.Img,
	}
}

// UserDetail ユーザー詳細
type UserDetail struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"displayName"`
	Img            string    `json:"img"`
	CreatedAt      time.Time `json:"createdAt"`
	FollowerCount  int64     `json:"followerCount"`
	FollowingCount int64     `json:"followingCount"`
	// IsFollowing 匿名のリクエストの場合は省略されます
	IsFollowing *bool `json:"isFollowing,omitempty"`
}

type Pin struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	BoardID     uuid.NullUUID `json:"boardId"`
	Media       string        `json:"media"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Link        null.String   `json:"link"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt"`
	User        *UserSummary  `json:"user,omitempty"`
}

func formatPin(pin *model.Pin) *Pin {
	return &Pin{
		ID:          pin.ID,
		UserID:      pin.UserID,
		BoardID:     pin.BoardID,
		Media:       pin.Media,
		Width:       pin.Width,
		Height:      pin.Height,
		Title:       pin.Title,
		Description: pin.Description,
		Link:        pin.Link,
		Tags:        pin.TagNames(),
		CreatedAt:   pin.CreatedAt,
		User:        formatUserSummary(pin.User),
	}
}

func formatPins(pins []*model.Pin) []*Pin {
	return lo.Map(pins, func(p *model.Pin, _ int) *Pin { return formatPin(p) })
}

// PinsPage ピン一覧のページ
type PinsPage struct {
	Pins []*Pin `json:"pins"`
	// NextCursor 次のページが無い場合はnull
	NextCursor *int `json:"nextCursor"`
}

type Board struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	PinCount  int64     `json:"pinCount"`
	FirstPin  *Pin      `json:"firstPin"`
}

func formatBoards(boards []*model.BoardWithSummary) []*Board {
	return lo.Map(boards, func(b *model.BoardWithSummary, _ int) *Board {
		res := &Board{
			ID:        b.ID,
			UserID:    b.UserID,
			Title:     b.Title,
			CreatedAt: b.CreatedAt,
			PinCount:  b.PinCount,
		}
		if b.FirstPin != nil {
			res.FirstPin = formatPin(b.FirstPin)
		}
		return res
	})
}

type Comment struct {
	ID          uuid.UUID    `json:"id"`
	PinID       uuid.UUID    `json:"pinId"`
	UserID      uuid.UUID    `json:"userId"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
	User        *UserSummary `json:"user"`
}

func formatComment(c *model.Comment) *Comment {
	return &Comment{
		ID:          c.ID,
		PinID:       c.PinID,
		UserID:      c.UserID,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		User:        formatUserSummary(c.User),
	}
}

func formatComments(comments []*model.Comment) []*Comment {
	return lo.Map(comments, func(c *model.Comment, _ int) *Comment { return formatComment(c) })
}

// InteractionState ピンのインタラクション状態
type InteractionState struct {
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
	IsSaved   bool  `json:"isSaved"`
}
