package v1

import (
	"errors"
	"net/http"
	"path"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/traPtitech/pinboard/router/consts"
	"github.com/traPtitech/pinboard/router/extension/herror"
	"github.com/traPtitech/pinboard/utils/storage"
)

// GetMedia GET /media/*
func (h *Handlers) GetMedia(c echo.Context) error {
	key := c.Param(consts.ParamMediaKey)
	if len(key) == 0 {
		return herror.NotFound()
	}

	f, err := h.FS.OpenFileByKey(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return herror.NotFound()
		}
		return herror.InternalServerError(err)
	}
	defer f.Close()

	// キーは生成時に一意なので内容は変化しない
	c.Response().Header().Set(consts.HeaderCacheControl, "public, max-age=31536000, immutable")
	http.ServeContent(c.Response(), c.Request(), path.Base(key), time.Time{}, f)
	return nil
}
