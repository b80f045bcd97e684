package middlewares

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/traPtitech/pinboard/router/extension"
	"github.com/traPtitech/pinboard/router/extension/herror"
)

// Recovery Recoveryミドルウェア
func Recovery(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					pe, ok := r.(error)
					if !ok {
						pe = fmt.Errorf("%v", r)
					}

					if isClientGone(pe) {
						logger.Warn(pe.Error(),
							zap.String("requestId", extension.GetRequestID(c)),
							zap.Error(pe),
						)
						err = nil
						return
					}

					err = herror.Panic(pe)
				}
			}()
			return next(c)
		}
	}
}

func isClientGone(err error) bool {
	var (
		ne *net.OpError
		se *os.SyscallError
	)
	if !errors.As(err, &ne) || !errors.As(ne.Err, &se) {
		return false
	}
	msg := strings.ToLower(se.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
