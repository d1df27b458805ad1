// Package web provides a framework-agnostic HTTP surface that the user
// registry controllers register against. Concrete servers live in the
// adapters subpackage.
package web

import (
	"context"
)

// WebServerInterface defines the contract for web server implementations
type WebServerInterface interface {
	// Route registration
	RegisterRoute(method string, path Path, handler HandlerFunc, middlewares ...MiddlewareFunc)
	RegisterGroup(prefix string) RouteGroup

	// Use wraps every route registered afterwards, including routes on
	// groups, in middleware. Requests that match no route skip it.
	Use(middleware MiddlewareFunc)

	// Server lifecycle
	Start(addr string) error
	Stop(ctx context.Context) error

	// Name identifies the adapter in logs
	Name() string
}

// RouteGroup represents a group of routes with a common prefix. Its
// routes run the middleware of every enclosing group and of the server.
type RouteGroup interface {
	RegisterRoute(method string, path Path, handler HandlerFunc, middlewares ...MiddlewareFunc)
	Use(middleware MiddlewareFunc)
	Group(prefix string) RouteGroup
}

// RequestContext provides a framework-agnostic interface for handling HTTP requests
type RequestContext interface {
	Method() string
	Path() string
	// Route returns the registered route pattern in Path syntax when the
	// framework exposes it, otherwise the request path.
	Route() string
	RealIP() string

	Param(key string) string
	QueryParam(key string) string
	QueryParams() map[string][]string

	Request() RequestInterface
	Response() ResponseInterface

	// Bind decodes the request body into i.
	Bind(i any) error

	Get(key string) any
	Set(key string, val any)
}

// RequestInterface provides access to the underlying request
type RequestInterface interface {
	Header(key string) string
	ContentType() string
	ContentLength() int64
}

// ResponseInterface provides response writing capabilities
type ResponseInterface interface {
	Status() int
	Header(key string) string
	SetHeader(key, value string)

	JSON(code int, i any) error
	String(code int, s string) error
	NoContent(code int) error

	Written() bool
}

// HandlerFunc defines the signature for HTTP handlers
type HandlerFunc func(RequestContext) error

// MiddlewareFunc defines the signature for middleware
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// Chain applies middlewares so the first one listed runs outermost.
func Chain(handler HandlerFunc, middlewares ...MiddlewareFunc) HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}

// Middlewares holds the middleware installed with Use on a server or group.
// A child sees its parent's middleware, including any added later.
type Middlewares struct {
	parent *Middlewares
	own    []MiddlewareFunc
}

// NewMiddlewares returns an empty root set
func NewMiddlewares() *Middlewares {
	return &Middlewares{}
}

func (m *Middlewares) Use(mw MiddlewareFunc) {
	m.own = append(m.own, mw)
}

// Child returns a set for a group nested under m
func (m *Middlewares) Child() *Middlewares {
	return &Middlewares{parent: m}
}

// For returns the middleware a route runs, outermost first: the parent's,
// then m's own, then the route's.
func (m *Middlewares) For(route []MiddlewareFunc) []MiddlewareFunc {
	var chain []MiddlewareFunc
	if m.parent != nil {
		chain = m.parent.For(nil)
	}
	chain = append(chain, m.own...)
	return append(chain, route...)
}
