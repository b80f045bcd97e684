package middlewares

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/singleflight"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/repository"
	"github.com/traPtitech/pinboard/router/consts"
	"github.com/traPtitech/pinboard/router/extension/ctxkey"
	"github.com/traPtitech/pinboard/router/extension/herror"
	"github.com/traPtitech/pinboard/router/session"
)

// UserAuthenticate リクエスト認証ミドルウェア
//
// 有効なセッションが無い場合は401を返します
func UserAuthenticate(repo repository.Repository, sessStore session.Store) echo.MiddlewareFunc {
	return authenticate(repo, sessStore, true)
}

// OptionalUserAuthenticate 任意のリクエスト認証ミドルウェア
//
// 有効なセッションが無い場合は匿名のリクエストとして処理を続行します
func OptionalUserAuthenticate(repo repository.Repository, sessStore session.Store) echo.MiddlewareFunc {
	return authenticate(repo, sessStore, false)
}

func authenticate(repo repository.Repository, sessStore session.Store, required bool) echo.MiddlewareFunc {
	var sfUser singleflight.Group

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessStore.GetSession(c)
			if err != nil {
				if !required {
					return next(c)
				}
				if errors.Is(err, session.ErrInvalidToken) {
					return herror.Unauthorized("invalid token")
				}
				return herror.Unauthorized("You are not logged in")
			}

			uid := sess.UserID()
			uI, err, _ := sfUser.Do(uid.String(), func() (interface{}, error) { return repo.GetUser(uid) })
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					// 削除されたユーザーのトークン
					if !required {
						return next(c)
					}
					return herror.Unauthorized("invalid token")
				}
				return herror.InternalServerError(err)
			}
			user := uI.(*model.User)

			c.Set(consts.KeyUser, user)
			c.Set(consts.KeyUserID, user.ID)
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), ctxkey.UserID, user.ID)))
			return next(c)
		}
	}
}
