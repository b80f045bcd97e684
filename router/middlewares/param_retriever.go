package middlewares

import (
	"errors"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"

	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router/consts"
	"github.com/traPtitech/pinboard/router/extension/herror"
)

// ParamRetriever リクエストパスパラメータで指定された各種エンティティをrepositoryから取得するミドルウェア
type ParamRetriever struct {
	repo     repository.Repository
	pinCache singleflight.Group
}

// NewParamRetriever ParamRetrieverを生成
func NewParamRetriever(repo repository.Repository) *ParamRetriever {
	return &ParamRetriever{repo: repo}
}

func (pr *ParamRetriever) byString(param string, key string, f func(c echo.Context, v string) (interface{}, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			r, err := f(c, c.Param(param))
			if err != nil {
				return pr.error(err)
			}

			c.Set(key, r)
			return next(c)
		}
	}
}

func (pr *ParamRetriever) byUUID(param string, key string, f func(c echo.Context, v uuid.UUID) (interface{}, error)) echo.MiddlewareFunc {
	return pr.byString(param, key, func(c echo.Context, v string) (interface{}, error) {
		u, err := uuid.FromString(v)
		if err != nil || u == uuid.Nil {
			return nil, herror.NotFound()
		}
		return f(c, u)
	})
}

func (pr *ParamRetriever) error(err error) error {
	var (
		he *echo.HTTPError
		ie *herror.InternalError
	)
	switch {
	case errors.As(err, &he), errors.As(err, &ie):
		return err
	case errors.Is(err, repository.ErrNotFound):
		return herror.NotFound()
	default:
		return herror.InternalServerError(err)
	}
}

// Username リクエストURLの`username`パラメータからUserを取り出す
func (pr *ParamRetriever) Username() echo.MiddlewareFunc {
	return pr.byString(consts.ParamUsername, consts.KeyParamUser, func(c echo.Context, v string) (interface{}, error) {
		return pr.repo.GetUserByName(v)
	})
}

// PinID リクエストURLの`id`パラメータからPinを取り出す
func (pr *ParamRetriever) PinID() echo.MiddlewareFunc {
	return pr.byUUID(consts.ParamPinID, consts.KeyParamPin, func(c echo.Context, v uuid.UUID) (interface{}, error) {
		pI, err, _ := pr.pinCache.Do(v.String(), func() (interface{}, error) { return pr.repo.GetPin(v, true) })
		return pI, err
	})
}
