package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/toyz/userregistry/pkg/web"
)

// Logging logs one line per request with its status and duration
func Logging(logger *slog.Logger) web.MiddlewareFunc {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.RequestContext) error {
			start := time.Now()

			err := next(c)

			status := StatusOf(c, err)
			attrs := []any{
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"duration", time.Since(start),
				"remote_ip", c.RealIP(),
			}
			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("request failed", append(attrs, "error", err)...)
			case err != nil:
				logger.Warn("request rejected", append(attrs, "error", err)...)
			default:
				logger.Info("request", attrs...)
			}
			return err
		}
	}
}

// StatusOf returns the status the client will receive. A handler error
// that has not been written yet is rendered by the adapter later, so its
// status is derived from the error itself.
func StatusOf(c web.RequestContext, err error) int {
	if err == nil || c.Response().Written() {
		return c.Response().Status()
	}
	return web.StatusCode(err)
}
