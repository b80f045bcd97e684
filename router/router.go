package router

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/traPtitech/pinboard/router/consts"
	"github.com/traPtitech/pinboard/router/extension"
	"github.com/traPtitech/pinboard/router/middlewares"
	v1 "github.com/traPtitech/pinboard/router/v1"
)

// Setup APIサーバーのechoインスタンスを生成します
func Setup(logger *zap.Logger, config *Config, v1Handlers *v1.Handlers) *echo.Echo {
	e := newEcho(logger.Named("router"), config)

	api := e.Group("/api")
	api.GET("/metrics", echoprometheus.NewHandler())
	api.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, http.StatusText(http.StatusOK)) })

	v1Handlers.Setup(e.Group(""))
	return e
}

func newEcho(logger *zap.Logger, config *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = extension.ErrorHandler(logger)
	e.Binder = &extension.Binder{}

	// ミドルウェア設定
	e.Use(middlewares.ServerVersion(config.Version))
	e.Use(middlewares.RequestID())
	if config.AccessLogging {
		e.Use(middlewares.AccessLogging(logger.Named("access_log"), config.Development))
	}
	e.Use(middlewares.Recovery(logger))
	if config.Gzipped {
		e.Use(middlewares.Gzip())
	}
	e.Use(extension.Wrap())
	e.Use(middlewares.RequestCounter())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     config.AllowOrigins,
		AllowCredentials: true,
		ExposeHeaders:    []string{consts.HeaderVersion, echo.HeaderXRequestID},
		AllowHeaders:     []string{echo.HeaderContentType},
		MaxAge:           3600,
	}))
	e.Use(echoprometheus.NewMiddleware("pinboard"))

	return e
}
