package v1

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router/middlewares"
	"github.com/traPtitech/pinboard/router/session"
	"github.com/traPtitech/pinboard/service/avatar"
	"github.com/traPtitech/pinboard/service/media"
	"github.com/traPtitech/pinboard/utils/storage"
)

// Config v1 APIハンドラの設定
type Config struct {
	// MaxPixels アップロードできる画像の最大画素数
	MaxPixels int
	// UploadLimitMB ピン作成リクエストの最大サイズ(MB)
	UploadLimitMB int64
	// AuthRateLimit 認証エンドポイントのIPアドレスごとの秒間リクエスト数
	AuthRateLimit rate.Limit
	// AuthRateBurst 認証エンドポイントのバースト数
	AuthRateBurst int
}

// Handlers ハンドラ
type Handlers struct {
	Repo      repository.Repository
	SessStore session.Store
	Uploader  media.Uploader
	Avatar    *avatar.Generator
	FS        storage.FileStorage
	Logger    *zap.Logger
	Config    Config
}

// Setup APIルーティングを行います
func (h *Handlers) Setup(e *echo.Group) {
	// middleware preparation
	requiresLogin := middlewares.UserAuthenticate(h.Repo, h.SessStore)
	optionalLogin := middlewares.OptionalUserAuthenticate(h.Repo, h.SessStore)
	retrieve := middlewares.NewParamRetriever(h.Repo)
	authRateLimit := middlewares.RateLimiter(h.Config.AuthRateLimit, h.Config.AuthRateBurst, h.Logger.Named("rate_limit"))

	apiUsers := e.Group("/users")
	{
		apiUsersAuth := apiUsers.Group("/auth")
		{
			apiUsersAuth.POST("/register", h.PostRegister, authRateLimit)
			apiUsersAuth.POST("/login", h.PostLogin, authRateLimit)
			apiUsersAuth.POST("/logout", h.PostLogout)
		}
		apiUsers.GET("/me", h.GetMe, requiresLogin)
		apiUsers.POST("/follow/:username", h.PostFollow, requiresLogin, retrieve.Username())
		apiUsers.GET("/:username", h.GetUser, optionalLogin, retrieve.Username())
	}
	apiPins := e.Group("/pins")
	{
		apiPins.GET("", h.GetPins)
		apiPins.POST("", h.PostPin, middlewares.RequestBodyLengthLimit(h.Config.UploadLimitMB), requiresLogin)
		apiPins.GET("/interaction-check/:id", h.GetInteractionCheck, optionalLogin)
		apiPins.POST("/interact/:id", h.PostInteract, requiresLogin)
		apiPins.GET("/:id", h.GetPin, retrieve.PinID())
	}
	e.GET("/boards/:userId", h.GetUserBoards)
	apiComments := e.Group("/comments")
	{
		apiComments.GET("/:postId", h.GetPinComments)
		apiComments.POST("", h.PostComment, requiresLogin)
	}
	e.GET("/media/*", h.GetMedia)
}
