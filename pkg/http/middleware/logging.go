package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	applogger "SajuPulse/pkg/logger"
)

// RequestLogging writes one entry per request. Errors returned by handlers
// are passed to the echo error handler first so the logged status is final.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		HandleError: true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		LogValuesFunc: func(_ echo.Context, v echomw.RequestLoggerValues) error {
			fields := []applogger.Field{
				applogger.String("method", v.Method),
				applogger.String("uri", v.URI),
				applogger.String("remote", v.RemoteIP),
				applogger.Int("status", v.Status),
				applogger.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, applogger.Error(v.Error))
			}
			l.Info("http request", fields...)
			return nil
		},
	})
}

// Recover converts handler panics into errors for the echo error handler,
// logging the stack.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{
		StackSize: 8 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			l.Error("http handler panic",
				applogger.String("route", c.Path()),
				applogger.Error(err),
				applogger.String("stack", string(stack)),
			)
			return err
		},
	})
}
