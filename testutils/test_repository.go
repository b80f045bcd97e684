package testutils

import (
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/samber/lo"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
)

// TestRepository ハンドラのテストで用いるインメモリのリポジトリ
type TestRepository struct {
	Users      map[uuid.UUID]model.User
	UsersLock  sync.RWMutex
	Follows    map[uuid.UUID]map[uuid.UUID]bool
	FollowLock sync.RWMutex
	// Pins, Boards, Commentsは作成順に保持します
	Pins         []*model.Pin
	Boards       []*model.Board
	Comments     []*model.Comment
	ContentsLock sync.RWMutex
	Likes        map[uuid.UUID]map[uuid.UUID]bool
	Saves        map[uuid.UUID]map[uuid.UUID]bool
	InterLock    sync.RWMutex
}

var _ repository.Repository = (*TestRepository)(nil)

// NewTestRepository TestRepositoryを生成します
func NewTestRepository() *TestRepository {
	return &TestRepository{
		Users:   map[uuid.UUID]model.User{},
		Follows: map[uuid.UUID]map[uuid.UUID]bool{},
		Likes:   map[uuid.UUID]map[uuid.UUID]bool{},
		Saves:   map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (repo *TestRepository) CreateUser(args repository.CreateUserArgs) (*model.User, error) {
	hash, err := model.HashPassword(args.Password)
	if err != nil {
		return nil, err
	}

	repo.UsersLock.Lock()
	defer repo.UsersLock.Unlock()
	for _, u := range repo.Users {
		if u.Username == args.Username || u.Email == args.Email {
			return nil, repository.ErrAlreadyExists
		}
	}

	now := time.Now()
	user := model.User{
		ID:          uuid.Must(uuid.NewV7()),
		Username:    args.Username,
		DisplayName: args.DisplayName,
		Email:       args.Email,
		Password:    hash,
		Img:         args.Img,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	repo.Users[user.ID] = user
	return &user, nil
}

func (repo *TestRepository) GetUser(id uuid.UUID) (*model.User, error) {
	repo.UsersLock.RLock()
	defer repo.UsersLock.RUnlock()
	u, ok := repo.Users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (repo *TestRepository) GetUserByName(username string) (*model.User, error) {
	return repo.findUser(func(u model.User) bool { return u.Username == username })
}

func (repo *TestRepository) GetUserByEmail(email string) (*model.User, error) {
	return repo.findUser(func(u model.User) bool { return u.Email == email })
}

func (repo *TestRepository) findUser(f func(u model.User) bool) (*model.User, error) {
	repo.UsersLock.RLock()
	defer repo.UsersLock.RUnlock()
	for _, u := range repo.Users {
		if f(u) {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (repo *TestRepository) userExists(id uuid.UUID) bool {
	repo.UsersLock.RLock()
	defer repo.UsersLock.RUnlock()
	_, ok := repo.Users[id]
	return ok
}

func (repo *TestRepository) ToggleFollow(followerID, followingID uuid.UUID) (bool, error) {
	if followerID == uuid.Nil || followingID == uuid.Nil {
		return false, repository.ErrNilID
	}
	if followerID == followingID {
		return false, repository.ArgError("followingID", "you cannot follow yourself")
	}
	if !repo.userExists(followerID) || !repo.userExists(followingID) {
		return false, repository.ErrNotFound
	}

	repo.FollowLock.Lock()
	defer repo.FollowLock.Unlock()
	return toggle(repo.Follows, followerID, followingID), nil
}

func (repo *TestRepository) IsFollowing(followerID, followingID uuid.UUID) (bool, error) {
	repo.FollowLock.RLock()
	defer repo.FollowLock.RUnlock()
	return repo.Follows[followerID][followingID], nil
}

func (repo *TestRepository) GetFollowCounts(userID uuid.UUID) (repository.FollowCounts, error) {
	repo.FollowLock.RLock()
	defer repo.FollowLock.RUnlock()
	var counts repository.FollowCounts
	for follower, followings := range repo.Follows {
		if follower == userID {
			counts.Following += int64(len(followings))
		}
		if followings[userID] {
			counts.Followers++
		}
	}
	return counts, nil
}

func (repo *TestRepository) CreatePin(args repository.CreatePinArgs) (*model.Pin, error) {
	if args.UserID == uuid.Nil {
		return nil, repository.ErrNilID
	}
	if !repo.userExists(args.UserID) {
		return nil, repository.ErrNotFound
	}

	repo.ContentsLock.Lock()
	defer repo.ContentsLock.Unlock()

	now := time.Now()
	boardID := args.BoardID
	if len(args.NewBoardTitle) > 0 {
		b := &model.Board{
			ID:        uuid.Must(uuid.NewV7()),
			UserID:    args.UserID,
			Title:     args.NewBoardTitle,
			CreatedAt: now,
		}
		repo.Boards = append(repo.Boards, b)
		boardID = uuid.NullUUID{UUID: b.ID, Valid: true}
	} else if boardID.Valid {
		b, ok := lo.Find(repo.Boards, func(b *model.Board) bool { return b.ID == boardID.UUID })
		if !ok {
			return nil, repository.ArgError("args.BoardID", "the board does not exist")
		}
		if b.UserID != args.UserID {
			return nil, repository.ErrForbidden
		}
	}

	pin := &model.Pin{
		ID:          uuid.Must(uuid.NewV7()),
		UserID:      args.UserID,
		BoardID:     boardID,
		Media:       args.Media,
		Width:       args.Width,
		Height:      args.Height,
		Title:       args.Title,
		Description: args.Description,
		Link:        args.Link,
		CreatedAt:   now,
	}
	for i, name := range lo.Uniq(args.Tags) {
		pin.Tags = append(pin.Tags, model.PinTag{PinID: pin.ID, Name: name, Position: i})
	}
	repo.Pins = append(repo.Pins, pin)

	p := *pin
	return &p, nil
}

func (repo *TestRepository) GetPin(id uuid.UUID, withUser bool) (*model.Pin, error) {
	repo.ContentsLock.RLock()
	pin, ok := lo.Find(repo.Pins, func(p *model.Pin) bool { return p.ID == id })
	repo.ContentsLock.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}

	p := *pin
	if withUser {
		u, err := repo.GetUser(p.UserID)
		if err != nil {
			return nil, err
		}
		p.User = u
	}
	return &p, nil
}

func (repo *TestRepository) GetPins(query repository.PinsQuery) ([]*model.Pin, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = repository.PinsPageSize
	}
	search := strings.ToLower(query.Search)

	var match func(p *model.Pin) bool
	switch {
	case len(search) > 0:
		match = func(p *model.Pin) bool {
			return strings.Contains(strings.ToLower(p.Title), search) || lo.Contains(p.TagNames(), query.Search)
		}
	case query.UserID.Valid:
		match = func(p *model.Pin) bool { return p.UserID == query.UserID.UUID }
	case query.BoardID.Valid:
		match = func(p *model.Pin) bool { return p.BoardID == query.BoardID }
	default:
		match = func(*model.Pin) bool { return true }
	}

	repo.ContentsLock.RLock()
	defer repo.ContentsLock.RUnlock()
	result := make([]*model.Pin, 0, limit)
	skip := query.Page * limit
	for i := len(repo.Pins) - 1; i >= 0 && len(result) < limit; i-- {
		p := repo.Pins[i]
		if !match(p) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	return result, nil
}

func (repo *TestRepository) PinExists(id uuid.UUID) (bool, error) {
	repo.ContentsLock.RLock()
	defer repo.ContentsLock.RUnlock()
	return lo.ContainsBy(repo.Pins, func(p *model.Pin) bool { return p.ID == id }), nil
}

func (repo *TestRepository) GetBoard(id uuid.UUID) (*model.Board, error) {
	repo.ContentsLock.RLock()
	defer repo.ContentsLock.RUnlock()
	b, ok := lo.Find(repo.Boards, func(b *model.Board) bool { return b.ID == id })
	if !ok {
		return nil, repository.ErrNotFound
	}
	cb := *b
	return &cb, nil
}

func (repo *TestRepository) GetUserBoards(userID uuid.UUID) ([]*model.BoardWithSummary, error) {
	repo.ContentsLock.RLock()
	defer repo.ContentsLock.RUnlock()
	result := make([]*model.BoardWithSummary, 0)
	for i := len(repo.Boards) - 1; i >= 0; i-- {
		b := repo.Boards[i]
		if b.UserID != userID {
			continue
		}
		s := &model.BoardWithSummary{Board: *b}
		for _, p := range repo.Pins {
			if p.BoardID.Valid && p.BoardID.UUID == b.ID {
				if s.FirstPin == nil {
					cp := *p
					s.FirstPin = &cp
				}
				s.PinCount++
			}
		}
		result = append(result, s)
	}
	return result, nil
}

func (repo *TestRepository) ToggleInteraction(t model.InteractionType, userID, pinID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || pinID == uuid.Nil {
		return false, repository.ErrNilID
	}
	if !t.Valid() {
		return false, repository.ArgError("t", "unknown interaction type")
	}
	if ok, _ := repo.PinExists(pinID); !ok {
		return false, repository.ErrNotFound
	}

	repo.InterLock.Lock()
	defer repo.InterLock.Unlock()
	if t == model.InteractionLike {
		return toggle(repo.Likes, pinID, userID), nil
	}
	return toggle(repo.Saves, pinID, userID), nil
}

func (repo *TestRepository) GetInteractionState(pinID, userID uuid.UUID) (*model.InteractionState, error) {
	repo.InterLock.RLock()
	defer repo.InterLock.RUnlock()
	return &model.InteractionState{
		LikeCount: int64(len(repo.Likes[pinID])),
		IsLiked:   userID != uuid.Nil && repo.Likes[pinID][userID],
		IsSaved:   userID != uuid.Nil && repo.Saves[pinID][userID],
	}, nil
}

func (repo *TestRepository) CreateComment(userID, pinID uuid.UUID, description string) (*model.Comment, error) {
	if userID == uuid.Nil || pinID == uuid.Nil {
		return nil, repository.ErrNilID
	}
	if ok, _ := repo.PinExists(pinID); !ok {
		return nil, repository.ErrNotFound
	}
	u, err := repo.GetUser(userID)
	if err != nil {
		return nil, err
	}

	c := &model.Comment{
		ID:          uuid.Must(uuid.NewV7()),
		PinID:       pinID,
		UserID:      userID,
		Description: description,
		CreatedAt:   time.Now(),
	}
	repo.ContentsLock.Lock()
	repo.Comments = append(repo.Comments, c)
	repo.ContentsLock.Unlock()

	cc := *c
	cc.User = u
	return &cc, nil
}

func (repo *TestRepository) GetPinComments(pinID uuid.UUID) ([]*model.Comment, error) {
	repo.ContentsLock.RLock()
	comments := make([]*model.Comment, 0)
	for i := len(repo.Comments) - 1; i >= 0; i-- {
		if c := repo.Comments[i]; c.PinID == pinID {
			cc := *c
			comments = append(comments, &cc)
		}
	}
	repo.ContentsLock.RUnlock()

	for _, c := range comments {
		u, err := repo.GetUser(c.UserID)
		if err != nil {
			return nil, err
		}
		c.User = u
	}
	return comments, nil
}

func toggle(m map[uuid.UUID]map[uuid.UUID]bool, a, b uuid.UUID) bool {
	if m[a][b] {
		delete(m[a], b)
		return false
	}
	if m[a] == nil {
		m[a] = map[uuid.UUID]bool{}
	}
	m[a][b] = true
	return true
}
