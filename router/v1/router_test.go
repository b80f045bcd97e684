package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gofrs/uuid"
	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router/extension"
	"github.com/traPtitech/pinboard/router/session"
	"github.com/traPtitech/pinboard/service/avatar"
	"github.com/traPtitech/pinboard/service/media/mock_media"
	"github.com/traPtitech/pinboard/testutils"
	"github.com/traPtitech/pinboard/utils/random"
	"github.com/traPtitech/pinboard/utils/storage"
)

const (
	rand         = "random"
	testPassword = "testtesttesttest"
)

var testSessionStore = session.NewJWTStore(session.Config{Secret: []byte("test-secret"), MaxAge: time.Hour})

type env struct {
	repo     *testutils.TestRepository
	fs       *storage.InMemoryFileStorage
	uploader *mock_media.MockUploader
	handlers *Handlers
	server   *httptest.Server
}

// setup テスト用サーバーを作成します
func setup(t *testing.T) *env {
	t.Helper()

	repo := testutils.NewTestRepository()
	fs := storage.NewInMemoryFileStorage()
	uploader := mock_media.NewMockUploader(gomock.NewController(t))
	h := &Handlers{
		Repo:      repo,
		SessStore: testSessionStore,
		Uploader:  uploader,
		Avatar:    avatar.NewGenerator(fs),
		FS:        fs,
		Logger:    zap.NewNop(),
		Config: Config{
			MaxPixels:     1000 * 1000,
			UploadLimitMB: 5,
			AuthRateLimit: rate.Inf,
			AuthRateBurst: 1,
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = extension.ErrorHandler(zap.NewNop())
	e.Binder = &extension.Binder{}
	e.Use(extension.Wrap())
	h.Setup(e.Group(""))

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)
	return &env{repo: repo, fs: fs, uploader: uploader, handlers: h, server: server}
}

// S 指定ユーザーのセッショントークンを発行
func S(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	sess, err := testSessionStore.IssueSession(c, userID)
	require.NoError(t, err)
	return sess.Token()
}

// R リクエストテスターを作成
func R(t *testing.T, server *httptest.Server) *httpexpect.Expect {
	t.Helper()
	return httpexpect.WithConfig(httpexpect.Config{
		BaseURL:  server.URL,
		Reporter: httpexpect.NewAssertReporter(t),
		Printers: []httpexpect.Printer{
			httpexpect.NewDebugPrinter(t, true),
		},
		Client: &http.Client{
			Jar:     nil, // クッキーは保持しない
			Timeout: time.Second * 30,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	})
}

// mustMakeUser ユーザーを必ず作成します
func mustMakeUser(t *testing.T, repo repository.Repository, username string) *model.User {
	t.Helper()
	if username == rand {
		username = random.AlphaNumeric(20)
	}
	u, err := repo.CreateUser(repository.CreateUserArgs{
		Username:    username,
		DisplayName: username,
		Email:       username + "@example.com",
		Password:    testPassword,
	})
	require.NoError(t, err)
	return u
}

// mustMakePin ピンを必ず作成します
func mustMakePin(t *testing.T, repo repository.Repository, userID uuid.UUID, title string, tags ...string) *model.Pin {
	t.Helper()
	p, err := repo.CreatePin(repository.CreatePinArgs{
		UserID: userID,
		Title:  title,
		Tags:   tags,
		Media:  "https://ik.example.com/pins/" + random.AlphaNumeric(8) + ".png",
		Width:  100,
		Height: 100,
	})
	require.NoError(t, err)
	return p
}

// mustMakePinOnNewBoard 新しいボードにピンを必ず作成します
func mustMakePinOnNewBoard(t *testing.T, repo repository.Repository, userID uuid.UUID, boardTitle string) *model.Pin {
	t.Helper()
	p, err := repo.CreatePin(repository.CreatePinArgs{
		UserID:        userID,
		NewBoardTitle: boardTitle,
		Title:         "pin on " + boardTitle,
		Media:         "https://ik.example.com/pins/a.png",
		Width:         100,
		Height:        100,
	})
	require.NoError(t, err)
	return p
}
