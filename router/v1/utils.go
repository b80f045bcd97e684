package v1

import (
	"errors"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"

	"github.com/traPtitech/pinboard/model"
	"github.com/traPtitech/pinboard/router/consts"
	"github.com/traPtitech/pinboard/router/extension/herror"
)

// bindAndValidate リクエストボディをバインドしてバリデーションします
func bindAndValidate(c echo.Context, i interface{}) error {
	if err := c.Bind(i); err != nil {
		return err
	}
	if err := vd.Validate(i); err != nil {
		var ie vd.InternalError
		if errors.As(err, &ie) {
			return herror.InternalServerError(ie.InternalError())
		}
		return herror.BadRequest(err)
	}
	return nil
}

// getRequestUser リクエストしてきたユーザーの情報を取得
func getRequestUser(c echo.Context) *model.User {
	u, _ := c.Get(consts.KeyUser).(*model.User)
	return u
}

// getRequestUserID リクエストしてきたユーザーUUIDを取得。匿名の場合はuuid.Nil
func getRequestUserID(c echo.Context) uuid.UUID {
	if u := getRequestUser(c); u != nil {
		return u.ID
	}
	return uuid.Nil
}

// getParamUser URLの:usernameに対応するユーザーを取得
func getParamUser(c echo.Context) *model.User {
	return c.Get(consts.KeyParamUser).(*model.User)
}

// getParamPin URLの:idに対応するピンを取得
func getParamPin(c echo.Context) *model.Pin {
	return c.Get(consts.KeyParamPin).(*model.Pin)
}

// getUUIDParam URLパラメータをUUIDとして取得。不正な場合は404
func getUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param(name))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, herror.NotFound()
	}
	return id, nil
}
