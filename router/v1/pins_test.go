package v1

import (
	"context"
	"fmt"
	"image/color"
	"net/http"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router/session"
	"github.com/traPtitech/pinboard/service/media"
	"github.com/traPtitech/pinboard/testutils"
)

func TestHandlers_GetPins(t *testing.T) {
	t.Parallel()

	path := "/pins"
	env := setup(t)
	user := mustMakeUser(t, env.repo, rand)
	other := mustMakeUser(t, env.repo, rand)
	for i := 0; i < 25; i++ {
		mustMakePin(t, env.repo, user.ID, fmt.Sprintf("pin %d", i))
	}
	cat := mustMakePin(t, env.repo, other.ID, "A Fluffy Cat", "animal")
	dog := mustMakePin(t, env.repo, other.ID, "dog", "animal", "pet")
	onBoard := mustMakePinOnNewBoard(t, env.repo, other.ID, "my board")

	t.Run("first page", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		obj := e.GET(path).
			Expect().
			Status(http.StatusOK).
			JSON().Object()
		pins := obj.Value("pins").Array()
		pins.Length().IsEqual(21)
		pins.Value(0).Object().Value("id").String().IsEqual(onBoard.ID.String())
		pins.Value(0).Object().NotContainsKey("user")
		obj.Value("nextCursor").Number().IsEqual(1)
	})

	t.Run("last page", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		obj := e.GET(path).
			WithQuery("cursor", 1).
			Expect().
			Status(http.StatusOK).
			JSON().Object()
		obj.Value("pins").Array().Length().IsEqual(7)
		obj.Value("nextCursor").IsNull()
	})

	t.Run("bad cursor", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET(path).
			WithQuery("cursor", "abc").
			Expect().
			Status(http.StatusBadRequest)
		e.GET(path).
			WithQuery("cursor", -1).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("search by title", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		pins := e.GET(path).
			WithQuery("search", "fluffy").
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("pins").Array()
		pins.Length().IsEqual(1)
		pins.Value(0).Object().Value("id").String().IsEqual(cat.ID.String())
	})

	t.Run("search by tag", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		pins := e.GET(path).
			WithQuery("search", "animal").
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("pins").Array()
		pins.Length().IsEqual(2)
		pins.Value(0).Object().Value("id").String().IsEqual(dog.ID.String())
		pins.Value(0).Object().Value("tags").Array().ConsistsOf("animal", "pet")
	})

	t.Run("by user", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		obj := e.GET(path).
			WithQuery("userId", other.ID).
			Expect().
			Status(http.StatusOK).
			JSON().Object()
		obj.Value("pins").Array().Length().IsEqual(3)
		obj.Value("nextCursor").IsNull()
	})

	t.Run("by board", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		pins := e.GET(path).
			WithQuery("boardId", onBoard.BoardID.UUID).
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("pins").Array()
		pins.Length().IsEqual(1)
		pins.Value(0).Object().Value("boardId").String().IsEqual(onBoard.BoardID.UUID.String())
	})

	t.Run("bad uuid", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET(path).
			WithQuery("userId", "nope").
			Expect().
			Status(http.StatusBadRequest)
		e.GET(path).
			WithQuery("boardId", "nope").
			Expect().
			Status(http.StatusBadRequest)
	})
}

func TestHandlers_GetPin(t *testing.T) {
	t.Parallel()

	path := "/pins/{id}"
	env := setup(t)
	user := mustMakeUser(t, env.repo, rand)
	pin := mustMakePin(t, env.repo, user.ID, "hello", "a", "b")

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET(path, uuid.Must(uuid.NewV7())).
			Expect().
			Status(http.StatusNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET(path, "invalid").
			Expect().
			Status(http.StatusNotFound)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		obj := e.GET(path, pin.ID).
			Expect().
			Status(http.StatusOK).
			JSON().Object()
		obj.Value("id").String().IsEqual(pin.ID.String())
		obj.Value("title").String().IsEqual("hello")
		obj.Value("tags").Array().ConsistsOf("a", "b")
		obj.Value("boardId").IsNull()
		obj.Value("link").IsNull()
		u := obj.Value("user").Object()
		u.Value("username").String().IsEqual(user.Username)
		u.NotContainsKey("email")
	})
}

func TestHandlers_PostPin(t *testing.T) {
	t.Parallel()

	path := "/pins"
	png := testutils.MustMakePNG(40, 30, color.White)
	uploaded := &media.UploadResult{FilePath: "https://ik.example.com/pins/x.png", Width: 40, Height: 30}

	t.Run("not logged in", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		e := R(t, env.server)
		e.POST(path).
			WithMultipart().
			WithFormField("title", "t").
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)
		e := R(t, env.server)
		e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("missing media", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)
		e := R(t, env.server)
		e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "t").
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("success with new board", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)
		env.uploader.EXPECT().
			Upload(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req media.UploadRequest) (*media.UploadResult, error) {
				assert.Equal(t, "a.png", req.Filename)
				assert.Equal(t, 40, req.Meta.Width)
				assert.Equal(t, 30, req.Meta.Height)
				if assert.NotNil(t, req.Transformation.Text) {
					assert.Equal(t, "hi", req.Transformation.Text.Text)
				}
				return uploaded, nil
			})

		e := R(t, env.server)
		obj := e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "sunset").
			WithFormField("description", "at the beach").
			WithFormField("link", "https://example.com/sunset").
			WithFormField("newBoard", "trips").
			WithFormField("tags", "sky, sea ,,sky").
			WithFormField("canvasOptions", `{"size":"original","backgroundColor":"#000000","height":300}`).
			WithFormField("textOptions", `{"text":"hi","color":"#ffffff","fontSize":16}`).
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusCreated).
			JSON().Object()
		obj.Value("title").String().IsEqual("sunset")
		obj.Value("media").String().IsEqual(uploaded.FilePath)
		obj.Value("width").Number().IsEqual(40)
		obj.Value("link").String().IsEqual("https://example.com/sunset")
		obj.Value("tags").Array().ConsistsOf("sky", "sea")
		obj.Value("boardId").String().NotEmpty()

		boards, err := env.repo.GetUserBoards(user.ID)
		require.NoError(t, err)
		if assert.Len(t, boards, 1) {
			assert.Equal(t, "trips", boards[0].Title)
			assert.EqualValues(t, 1, boards[0].PinCount)
		}
	})

	t.Run("existing board", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)
		first := mustMakePinOnNewBoard(t, env.repo, user.ID, "board")
		env.uploader.EXPECT().Upload(gomock.Any(), gomock.Any()).Return(uploaded, nil)

		e := R(t, env.server)
		e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "second").
			WithFormField("board", first.BoardID.UUID.String()).
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusCreated).
			JSON().Object().Value("boardId").String().IsEqual(first.BoardID.UUID.String())
	})

	t.Run("another user's board", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)
		other := mustMakeUser(t, env.repo, rand)
		theirs := mustMakePinOnNewBoard(t, env.repo, other.ID, "theirs")

		e := R(t, env.server)
		e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "steal").
			WithFormField("board", theirs.BoardID.UUID.String()).
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusForbidden)
	})

	t.Run("unknown board", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)

		e := R(t, env.server)
		e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "t").
			WithFormField("board", uuid.Must(uuid.NewV7()).String()).
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("invalid color", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)

		e := R(t, env.server)
		e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "t").
			WithFormField("textOptions", `{"text":"hi","color":"#zzz"}`).
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("broken canvas options", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)

		e := R(t, env.server)
		obj := e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "t").
			WithFormField("canvasOptions", `{"size":`).
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()
		obj.Value("message").String().IsEqual(createPinFailedMessage)
		obj.Value("error").String().NotEmpty()
	})

	t.Run("not an image", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)

		e := R(t, env.server)
		e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "t").
			WithFileBytes("media", "a.txt", []byte("plain text")).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object().Value("message").String().IsEqual(createPinFailedMessage)
	})

	t.Run("upload failure", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		user := mustMakeUser(t, env.repo, rand)
		env.uploader.EXPECT().
			Upload(gomock.Any(), gomock.Any()).
			Return(nil, fmt.Errorf("%w: status 503", media.ErrUploadFailed))

		e := R(t, env.server)
		obj := e.POST(path).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithMultipart().
			WithFormField("title", "t").
			WithFileBytes("media", "a.png", png).
			Expect().
			Status(http.StatusInternalServerError).
			JSON().Object()
		obj.Value("message").String().IsEqual(createPinFailedMessage)
		obj.Value("error").String().Contains("upload failed")

		pins, err := env.repo.GetPins(repository.PinsQuery{})
		require.NoError(t, err)
		assert.Empty(t, pins)
	})
}

func TestHandlers_Interaction(t *testing.T) {
	t.Parallel()

	env := setup(t)
	owner := mustMakeUser(t, env.repo, rand)
	user := mustMakeUser(t, env.repo, rand)
	pin := mustMakePin(t, env.repo, owner.ID, "pin")

	t.Run("check anonymous", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		obj := e.GET("/pins/interaction-check/{id}", pin.ID).
			Expect().
			Status(http.StatusOK).
			JSON().Object()
		obj.Value("isLiked").Boolean().IsFalse()
		obj.Value("isSaved").Boolean().IsFalse()
	})

	t.Run("check not found", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET("/pins/interaction-check/{id}", uuid.Must(uuid.NewV7())).
			Expect().
			Status(http.StatusNotFound)
	})

	t.Run("interact not logged in", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST("/pins/interact/{id}", pin.ID).
			WithJSON(map[string]string{"type": "like"}).
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("invalid type", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST("/pins/interact/{id}", pin.ID).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithJSON(map[string]string{"type": "share"}).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("interact not found", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST("/pins/interact/{id}", uuid.Must(uuid.NewV7())).
			WithCookie(session.CookieName, S(t, user.ID)).
			WithJSON(map[string]string{"type": "save"}).
			Expect().
			Status(http.StatusNotFound)
	})
}

func TestHandlers_PostInteract_Toggle(t *testing.T) {
	t.Parallel()

	env := setup(t)
	owner := mustMakeUser(t, env.repo, rand)
	user := mustMakeUser(t, env.repo, rand)
	pin := mustMakePin(t, env.repo, owner.ID, "pin")
	token := S(t, user.ID)
	e := R(t, env.server)

	like := func(active bool) {
		obj := e.POST("/pins/interact/{id}", pin.ID).
			WithCookie(session.CookieName, token).
			WithJSON(&PostInteractRequest{Type: model.InteractionLike}).
			Expect().
			Status(http.StatusOK).
			JSON().Object()
		obj.Value("type").String().IsEqual("like")
		obj.Value("active").Boolean().IsEqual(active)
	}

	like(true)
	obj := e.GET("/pins/interaction-check/{id}", pin.ID).
		WithCookie(session.CookieName, token).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	obj.Value("likeCount").Number().IsEqual(1)
	obj.Value("isLiked").Boolean().IsTrue()
	obj.Value("isSaved").Boolean().IsFalse()

	like(false)
	e.GET("/pins/interaction-check/{id}", pin.ID).
		WithCookie(session.CookieName, token).
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("likeCount").Number().IsEqual(0)

	e.POST("/pins/interact/{id}", pin.ID).
		WithCookie(session.CookieName, token).
		WithJSON(&PostInteractRequest{Type: model.InteractionSave}).
		Expect().
		Status(http.StatusOK).
		JSON().Object().Value("active").Boolean().IsTrue()

	state, err := env.repo.GetInteractionState(pin.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, state.IsSaved)
}
