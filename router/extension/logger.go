package extension

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/traPtitech/pinboard/utils/random"
)

const headerCloudTraceContext = "X-Cloud-Trace-Context"

// GetRequestID リクエストIDを返します
func GetRequestID(c echo.Context) string {
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); len(rid) > 0 {
		return rid
	}
	rid := c.Request().Header.Get(echo.HeaderXRequestID)
	if len(rid) == 0 {
		rid = random.AlphaNumeric(32)
	}
	return rid
}

// GetTraceID ログ用のトレースIDを返します
//
// X-Cloud-Trace-Contextヘッダーがある場合はそのトレースID部分を、ない場合はリクエストIDを返します
func GetTraceID(c echo.Context) string {
	if tc := c.Request().Header.Get(headerCloudTraceContext); len(tc) > 0 {
		if i := strings.IndexByte(tc, '/'); i > 0 {
			return tc[:i]
		}
		return tc
	}
	return GetRequestID(c)
}
