package v1

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traPtitech/pinboard/router/session"
)

func TestHandlers_PostRegister(t *testing.T) {
	t.Parallel()

	path := "/users/auth/register"
	t.Run("bad request", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		e := R(t, env.server)
		obj := e.POST(path).
			WithJSON(&PostRegisterRequest{Username: "bad name!", DisplayName: "", Email: "nope", Password: "short"}).
			Expect().
			Status(http.StatusBadRequest).
			JSON().
			Object()
		errs := obj.Value("errors").Object()
		errs.ContainsKey("username")
		errs.ContainsKey("displayName")
		errs.ContainsKey("email")
		errs.ContainsKey("password")
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		e := R(t, env.server)
		res := e.POST(path).
			WithJSON(&PostRegisterRequest{Username: "alice", DisplayName: "Alice", Email: "alice@example.com", Password: "password1234"}).
			Expect().
			Status(http.StatusCreated)
		res.Cookie(session.CookieName).Value().NotEmpty()
		obj := res.JSON().Object()
		obj.Value("username").String().IsEqual("alice")
		obj.Value("displayName").String().IsEqual("Alice")
		obj.Value("email").String().IsEqual("alice@example.com")
		obj.NotContainsKey("password")
		obj.Value("img").String().HasPrefix("/media/avatars/")

		u, err := env.repo.GetUserByName("alice")
		require.NoError(t, err)
		assert.NotEqual(t, "password1234", u.Password)
		assert.NoError(t, u.AuthenticatePassword("password1234"))
		assert.Equal(t, 1, env.fs.Len())
	})

	t.Run("conflict", func(t *testing.T) {
		t.Parallel()
		env := setup(t)
		mustMakeUser(t, env.repo, "bob")
		e := R(t, env.server)
		e.POST(path).
			WithJSON(&PostRegisterRequest{Username: "bob", DisplayName: "Bob", Email: "another@example.com", Password: "password1234"}).
			Expect().
			Status(http.StatusConflict)
		e.POST(path).
			WithJSON(&PostRegisterRequest{Username: "bob2", DisplayName: "Bob", Email: "bob@example.com", Password: "password1234"}).
			Expect().
			Status(http.StatusConflict)
		assert.Equal(t, 0, env.fs.Len())
	})
}

func TestHandlers_PostLogin(t *testing.T) {
	t.Parallel()

	path := "/users/auth/login"
	env := setup(t)
	user := mustMakeUser(t, env.repo, "carol")

	t.Run("neither identifier", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST(path).
			WithJSON(&PostLoginRequest{Password: testPassword}).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("both identifiers", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST(path).
			WithJSON(&PostLoginRequest{Email: user.Email, Username: user.Username, Password: testPassword}).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("by email", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		res := e.POST(path).
			WithJSON(&PostLoginRequest{Email: user.Email, Password: testPassword}).
			Expect().
			Status(http.StatusOK)
		res.Cookie(session.CookieName).Value().NotEmpty()
		res.JSON().Object().Value("id").String().IsEqual(user.ID.String())
	})

	t.Run("by username", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST(path).
			WithJSON(&PostLoginRequest{Username: user.Username, Password: testPassword}).
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("username").String().IsEqual(user.Username)
	})

	t.Run("same message for unknown user and wrong password", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		wrong := e.POST(path).
			WithJSON(&PostLoginRequest{Username: user.Username, Password: "wrong password"}).
			Expect().
			Status(http.StatusUnauthorized).
			JSON().Object().Value("message").String().Raw()
		unknown := e.POST(path).
			WithJSON(&PostLoginRequest{Email: "nobody@example.com", Password: testPassword}).
			Expect().
			Status(http.StatusUnauthorized).
			JSON().Object().Value("message").String().Raw()
		assert.Equal(t, loginFailedMessage, wrong)
		assert.Equal(t, wrong, unknown)
	})
}

func TestHandlers_PostLogout(t *testing.T) {
	t.Parallel()

	env := setup(t)
	e := R(t, env.server)
	res := e.POST("/users/auth/logout").
		Expect().
		Status(http.StatusOK)
	res.JSON().Object().Value("message").String().IsEqual("logout successful")
	res.Cookie(session.CookieName).Value().IsEmpty()
}

func TestHandlers_GetMe(t *testing.T) {
	t.Parallel()

	env := setup(t)
	user := mustMakeUser(t, env.repo, rand)

	t.Run("not logged in", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET("/users/me").
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("invalid token", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET("/users/me").
			WithCookie(session.CookieName, "invalid").
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET("/users/me").
			WithCookie(session.CookieName, S(t, user.ID)).
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("email").String().IsEqual(user.Email)
	})
}

func TestHandlers_GetUser(t *testing.T) {
	t.Parallel()

	env := setup(t)
	user := mustMakeUser(t, env.repo, rand)
	other := mustMakeUser(t, env.repo, rand)
	_, err := env.repo.ToggleFollow(other.ID, user.ID)
	require.NoError(t, err)

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET("/users/{username}", "nobody").
			Expect().
			Status(http.StatusNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		obj := e.GET("/users/{username}", user.Username).
			Expect().
			Status(http.StatusOK).
			JSON().Object()
		obj.Value("id").String().IsEqual(user.ID.String())
		obj.Value("followerCount").Number().IsEqual(1)
		obj.Value("followingCount").Number().IsEqual(0)
		obj.NotContainsKey("isFollowing")
		obj.NotContainsKey("email")
		obj.NotContainsKey("password")
	})

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.GET("/users/{username}", user.Username).
			WithCookie(session.CookieName, S(t, other.ID)).
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("isFollowing").Boolean().IsTrue()
	})
}

func TestHandlers_PostFollow(t *testing.T) {
	t.Parallel()

	env := setup(t)
	user := mustMakeUser(t, env.repo, rand)
	target := mustMakeUser(t, env.repo, rand)
	path := "/users/follow/{username}"

	t.Run("not logged in", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST(path, target.Username).
			Expect().
			Status(http.StatusUnauthorized)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST(path, "nobody").
			WithCookie(session.CookieName, S(t, user.ID)).
			Expect().
			Status(http.StatusNotFound)
	})

	t.Run("self", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		e.POST(path, user.Username).
			WithCookie(session.CookieName, S(t, user.ID)).
			Expect().
			Status(http.StatusBadRequest)
	})

	t.Run("toggle", func(t *testing.T) {
		t.Parallel()
		e := R(t, env.server)
		token := S(t, user.ID)
		e.POST(path, target.Username).
			WithCookie(session.CookieName, token).
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("isFollowing").Boolean().IsTrue()
		e.POST(path, target.Username).
			WithCookie(session.CookieName, token).
			Expect().
			Status(http.StatusOK).
			JSON().Object().Value("isFollowing").Boolean().IsFalse()

		following, err := env.repo.IsFollowing(user.ID, target.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})
}

func TestPostRegisterRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := PostRegisterRequest{Username: "a_b-c", DisplayName: "表示名", Email: "a@example.com", Password: "abcdefgh"}
	assert.NoError(t, valid.Validate())

	long := valid
	long.Username = strings.Repeat("a", 33)
	assert.Error(t, long.Validate())
}
