package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traPtitech/pinboard/router/consts"
	"github.com/traPtitech/pinboard/router/extension/herror"
)

// GetUserBoards GET /boards/:userId
func (h *Handlers) GetUserBoards(c echo.Context) error {
	userID, err := getUUIDParam(c, consts.ParamUserID)
	if err != nil {
		return err
	}

	boards, err := h.Repo.GetUserBoards(userID)
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, formatBoards(boards))
}
