package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestJWTStore(t *testing.T) {
	t.Parallel()

	store := NewJWTStore(Config{Secret: []byte("secret"), MaxAge: time.Hour, Secure: true})
	uid := uuid.Must(uuid.NewV7())

	t.Run("issue and get", func(t *testing.T) {
		t.Parallel()

		c, rec := newContext()
		sess, err := store.IssueSession(c, uid)
		require.NoError(t, err)
		assert.Equal(t, uid, sess.UserID())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, CookieName, cookie.Name)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, 3600, cookie.MaxAge)

		c2, _ := newContext(&http.Cookie{Name: CookieName, Value: cookie.Value})
		got, err := store.GetSession(c2)
		require.NoError(t, err)
		assert.Equal(t, uid, got.UserID())
		assert.Equal(t, sess.Token(), got.Token())
	})

	t.Run("no cookie", func(t *testing.T) {
		t.Parallel()

		c, _ := newContext()
		_, err := store.GetSession(c)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()

		c, rec := newContext()
		_, err := store.IssueSession(c, uid)
		require.NoError(t, err)

		other := NewJWTStore(Config{Secret: []byte("another secret")})
		c2, _ := newContext(&http.Cookie{Name: CookieName, Value: rec.Result().Cookies()[0].Value})
		_, err = other.GetSession(c2)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		c, _ := newContext(&http.Cookie{Name: CookieName, Value: "abc.def.ghi"})
		_, err := store.GetSession(c)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("revoke", func(t *testing.T) {
		t.Parallel()

		c, rec := newContext()
		require.NoError(t, store.RevokeSession(c))
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "", cookies[0].Value)
		assert.True(t, cookies[0].MaxAge < 0)
	})

	t.Run("nil user", func(t *testing.T) {
		t.Parallel()

		c, _ := newContext()
		_, err := store.IssueSession(c, uuid.Nil)
		assert.Error(t, err)
	})
}
