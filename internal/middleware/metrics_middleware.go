package middleware

import (
	"time"

	"github.com/toyz/userregistry/pkg/web"
)

// RequestObserver receives one observation per served request
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics reports every request to observer, labelled by route pattern
// rather than raw path to keep label cardinality bounded.
func Metrics(observer RequestObserver) web.MiddlewareFunc {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.RequestContext) error {
			start := time.Now()
			err := next(c)
			observer.ObserveRequest(c.Method(), c.Route(), StatusOf(c, err), time.Since(start))
			return err
		}
	}
}
