package extension

import (
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/traPtitech/pinboard/router/extension/herror"
)

const traceKey = "logging.googleapis.com/trace"

// ErrorHandler カスタムエラーハンドラ
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(e error, c echo.Context) {
		var (
			code int
			body interface{}
		)

		switch err := e.(type) {
		case nil:
			return
		case *echo.HTTPError:
			if err.Internal != nil {
				if herr, ok := err.Internal.(*echo.HTTPError); ok {
					err = herr
				}
			}
			switch m := err.Message.(type) {
			case string:
				body = echo.Map{"message": m}
			case vd.Errors:
				body = echo.Map{"message": m.Error(), "errors": m}
			case error:
				body = echo.Map{"message": m.Error()}
			default:
				body = echo.Map{"message": http.StatusText(err.Code)}
			}
			code = err.Code
		case *herror.InternalError:
			logger.Error(err.Error(), append(err.Fields, zap.String(traceKey, GetTraceID(c)))...)
			code = http.StatusInternalServerError
			body = echo.Map{"message": http.StatusText(http.StatusInternalServerError)}
		case *herror.ExposedError:
			logger.Error(err.Error(), append(err.Fields, zap.String(traceKey, GetTraceID(c)))...)
			code = http.StatusInternalServerError
			body = echo.Map{"message": err.Message, "error": err.Err.Error()}
		default:
			logger.Error(err.Error(), zap.String(traceKey, GetTraceID(c)))
			code = http.StatusInternalServerError
			body = echo.Map{"message": http.StatusText(http.StatusInternalServerError)}
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				e = c.NoContent(code)
			} else {
				e = json(c, code, body, jsoniter.ConfigFastest)
			}
			if e != nil {
				logger.Warn("failed to send error response", zap.Error(e), zap.String(traceKey, GetTraceID(c)))
			}
		}
	}
}
