package gorm

import (
	"strings"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/utils/random"
)

func TestRepositoryImpl_CreatePin(t *testing.T) {
	t.Parallel()
	repo, _, _, user := setupWithUser(t, common)

	t.Run("Nil user", func(t *testing.T) {
		t.Parallel()
		_, err := repo.CreatePin(repository.CreatePinArgs{})
		assert.ErrorIs(t, err, repository.ErrNilID)
	})

	t.Run("without board", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		p, err := repo.CreatePin(repository.CreatePinArgs{
			UserID:      user.ID,
			Title:       "title",
			Description: "desc",
			Link:        null.StringFrom("https://example.com"),
			Tags:        []string{"go", "cats", "go"},
			Media:       "/media/pins/a.png",
			Width:       640,
			Height:      480,
		})
		require.NoError(err)
		assert.False(p.BoardID.Valid)

		got, err := repo.GetPin(p.ID, true)
		require.NoError(err)
		assert.Equal("title", got.Title)
		assert.Equal("https://example.com", got.Link.String)
		assert.Equal([]string{"go", "cats"}, got.TagNames())
		assert.Equal(640, got.Width)
		if assert.NotNil(got.User) {
			assert.Equal(user.ID, got.User.ID)
		}
	})

	t.Run("with new board", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		p := mustMakePinOnNewBoard(t, repo, user.ID, "my board")
		b, err := repo.GetBoard(p.BoardID.UUID)
		require.NoError(err)
		assert.Equal("my board", b.Title)
		assert.Equal(user.ID, b.UserID)
	})

	t.Run("with existing board", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		first := mustMakePinOnNewBoard(t, repo, user.ID, "existing")
		p, err := repo.CreatePin(repository.CreatePinArgs{
			UserID:  user.ID,
			BoardID: first.BoardID,
			Title:   "second",
			Media:   "/media/pins/b.png",
		})
		require.NoError(err)
		assert.Equal(first.BoardID, p.BoardID)
	})

	t.Run("unknown board", func(t *testing.T) {
		t.Parallel()
		_, err := repo.CreatePin(repository.CreatePinArgs{
			UserID:  user.ID,
			BoardID: uuid.NullUUID{UUID: uuid.Must(uuid.NewV7()), Valid: true},
			Title:   "x",
		})
		assert.True(t, repository.IsArgError(err))
	})

	t.Run("other user's board", func(t *testing.T) {
		t.Parallel()
		other := mustMakeUser(t, repo, rand)
		p := mustMakePinOnNewBoard(t, repo, other.ID, "theirs")
		_, err := repo.CreatePin(repository.CreatePinArgs{
			UserID:  user.ID,
			BoardID: p.BoardID,
			Title:   "x",
		})
		assert.ErrorIs(t, err, repository.ErrForbidden)
	})

	t.Run("new board is rolled back on failure", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		title := random.AlphaNumeric(30)
		_, err := repo.CreatePin(repository.CreatePinArgs{
			UserID:        user.ID,
			NewBoardTitle: title,
			Title:         strings.Repeat("a", 200), // varchar(100)を超える
		})
		require.Error(err)

		var count int64
		require.NoError(getDB(repo).Model(&model.Board{}).Where("title = ?", title).Count(&count).Error)
		assert.EqualValues(0, count)
	})
}

func TestRepositoryImpl_GetPin(t *testing.T) {
	t.Parallel()
	repo, _, _, user := setupWithUser(t, common)
	p := mustMakePin(t, repo, user.ID, rand)

	_, err := repo.GetPin(uuid.Nil, false)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetPin(uuid.Must(uuid.NewV7()), false)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := repo.GetPin(p.ID, false)
	if assert.NoError(t, err) {
		assert.Equal(t, p.ID, got.ID)
		assert.Nil(t, got.User)
	}
}

func TestRepositoryImpl_GetPins(t *testing.T) {
	t.Parallel()
	repo, _, _, user := setupWithUser(t, ex2)

	const total = 25
	created := make([]*model.Pin, total)
	for i := 0; i < total; i++ {
		created[i] = mustMakePin(t, repo, user.ID, rand)
	}

	t.Run("by user, paginated", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		page0, err := repo.GetPins(repository.PinsQuery{UserID: uuid.NullUUID{UUID: user.ID, Valid: true}, Page: 0})
		require.NoError(err)
		assert.Len(page0, repository.PinsPageSize)
		// 新しい順
		assert.Equal(created[total-1].ID, page0[0].ID)

		page1, err := repo.GetPins(repository.PinsQuery{UserID: uuid.NullUUID{UUID: user.ID, Valid: true}, Page: 1})
		require.NoError(err)
		assert.Len(page1, total-repository.PinsPageSize)

		seen := map[uuid.UUID]bool{}
		for _, p := range page0 {
			seen[p.ID] = true
		}
		for _, p := range page1 {
			assert.False(seen[p.ID])
		}
	})

	t.Run("search by title and tag", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		other := mustMakeUser(t, repo, rand)
		token := random.AlphaNumeric(12)
		byTitle := mustMakePin(t, repo, other.ID, "Title "+strings.ToUpper(token)+" here")
		byTag := mustMakePin(t, repo, other.ID, rand, token)
		_ = mustMakePin(t, repo, other.ID, rand, token+"x")

		pins, err := repo.GetPins(repository.PinsQuery{Search: token})
		require.NoError(err)
		ids := make([]uuid.UUID, len(pins))
		for i, p := range pins {
			ids[i] = p.ID
		}
		assert.ElementsMatch([]uuid.UUID{byTitle.ID, byTag.ID}, ids)
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		t.Parallel()
		pins, err := repo.GetPins(repository.PinsQuery{Search: "%"})
		if assert.NoError(t, err) {
			assert.Empty(t, pins)
		}
	})

	t.Run("search takes precedence over user", func(t *testing.T) {
		t.Parallel()
		pins, err := repo.GetPins(repository.PinsQuery{
			Search: random.AlphaNumeric(30),
			UserID: uuid.NullUUID{UUID: user.ID, Valid: true},
		})
		if assert.NoError(t, err) {
			assert.Empty(t, pins)
		}
	})

	t.Run("by board", func(t *testing.T) {
		t.Parallel()
		other := mustMakeUser(t, repo, rand)
		p := mustMakePinOnNewBoard(t, repo, other.ID, "board")
		pins, err := repo.GetPins(repository.PinsQuery{BoardID: p.BoardID})
		if assert.NoError(t, err) && assert.Len(t, pins, 1) {
			assert.Equal(t, p.ID, pins[0].ID)
		}
	})
}

func TestRepositoryImpl_PinExists(t *testing.T) {
	t.Parallel()
	repo, _, _, user := setupWithUser(t, common)
	p := mustMakePin(t, repo, user.ID, rand)

	ok, err := repo.PinExists(p.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.PinExists(uuid.Must(uuid.NewV7()))
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.PinExists(uuid.Nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}
