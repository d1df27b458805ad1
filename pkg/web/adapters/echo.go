package adapters

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/toyz/userregistry/pkg/web"
)

// EchoAdapter implements web.WebServerInterface for Echo v4
type EchoAdapter struct {
	engine *echo.Echo
	mws    *web.Middlewares
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{engine: e, mws: web.NewMiddlewares()}
}

// NewDefaultEchoAdapter creates an Echo adapter with panic recovery and no banner
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	return NewEchoAdapter(e)
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method string, path web.Path, handler web.HandlerFunc, middlewares ...web.MiddlewareFunc) {
	ea.engine.Add(method, path.ColonPath(), ea.convertHandler(handler), ea.convertMiddlewares(ea.mws.For(middlewares))...)
}

// RegisterGroup creates a new route group
func (ea *EchoAdapter) RegisterGroup(prefix string) web.RouteGroup {
	return &EchoGroupAdapter{group: ea.engine.Group(prefix), adapter: ea, mws: ea.mws.Child()}
}

// Use wraps routes registered from now on in mw
func (ea *EchoAdapter) Use(mw web.MiddlewareFunc) {
	ea.mws.Use(mw)
}

// Start starts the server
func (ea *EchoAdapter) Start(addr string) error {
	if err := ea.engine.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// EchoGroupAdapter implements web.RouteGroup for Echo groups
type EchoGroupAdapter struct {
	group   *echo.Group
	adapter *EchoAdapter
	mws     *web.Middlewares
}

// RegisterRoute registers a route with the group
func (ega *EchoGroupAdapter) RegisterRoute(method string, path web.Path, handler web.HandlerFunc, middlewares ...web.MiddlewareFunc) {
	ega.group.Add(method, path.ColonPath(), ega.adapter.convertHandler(handler),
		ega.adapter.convertMiddlewares(ega.mws.For(middlewares))...)
}

// Use wraps the group's routes registered from now on in mw
func (ega *EchoGroupAdapter) Use(mw web.MiddlewareFunc) {
	ega.mws.Use(mw)
}

// Group creates a sub-group
func (ega *EchoGroupAdapter) Group(prefix string) web.RouteGroup {
	return &EchoGroupAdapter{group: ega.group.Group(prefix), adapter: ega.adapter, mws: ega.mws.Child()}
}

func (ea *EchoAdapter) convertHandler(handler web.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := &EchoRequestContext{context: c}
		if err := handler(ctx); err != nil && !c.Response().Committed {
			return web.WriteError(ctx, err)
		}
		return nil
	}
}

func (ea *EchoAdapter) convertMiddlewares(middlewares []web.MiddlewareFunc) []echo.MiddlewareFunc {
	converted := make([]echo.MiddlewareFunc, len(middlewares))
	for i, mw := range middlewares {
		converted[i] = ea.convertMiddleware(mw)
	}
	return converted
}

func (ea *EchoAdapter) convertMiddleware(mw web.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			wrapped := mw(func(web.RequestContext) error {
				return next(c)
			})
			ctx := &EchoRequestContext{context: c}
			if err := wrapped(ctx); err != nil && !c.Response().Committed {
				return web.WriteError(ctx, err)
			}
			return nil
		}
	}
}

// EchoRequestContext implements web.RequestContext for Echo
type EchoRequestContext struct {
	context echo.Context
}

func (erc *EchoRequestContext) Method() string {
	return erc.context.Request().Method
}

func (erc *EchoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

func (erc *EchoRequestContext) Route() string {
	if route := erc.context.Path(); route != "" {
		return web.FromColonPath(route)
	}
	return erc.Path()
}

func (erc *EchoRequestContext) RealIP() string {
	return erc.context.RealIP()
}

func (erc *EchoRequestContext) Param(key string) string {
	return erc.context.Param(key)
}

func (erc *EchoRequestContext) QueryParam(key string) string {
	return erc.context.QueryParam(key)
}

func (erc *EchoRequestContext) QueryParams() map[string][]string {
	return erc.context.QueryParams()
}

func (erc *EchoRequestContext) Request() web.RequestInterface {
	return &echoRequest{request: erc.context.Request()}
}

func (erc *EchoRequestContext) Response() web.ResponseInterface {
	return &echoResponse{context: erc.context}
}

func (erc *EchoRequestContext) Bind(i any) error {
	return erc.context.Bind(i)
}

func (erc *EchoRequestContext) Get(key string) any {
	return erc.context.Get(key)
}

func (erc *EchoRequestContext) Set(key string, val any) {
	erc.context.Set(key, val)
}

type echoRequest struct {
	request *http.Request
}

func (r *echoRequest) Header(key string) string {
	return r.request.Header.Get(key)
}

func (r *echoRequest) ContentType() string {
	return r.request.Header.Get(echo.HeaderContentType)
}

func (r *echoRequest) ContentLength() int64 {
	return r.request.ContentLength
}

type echoResponse struct {
	context echo.Context
}

func (r *echoResponse) Status() int {
	return r.context.Response().Status
}

func (r *echoResponse) Header(key string) string {
	return r.context.Response().Header().Get(key)
}

func (r *echoResponse) SetHeader(key, value string) {
	r.context.Response().Header().Set(key, value)
}

func (r *echoResponse) JSON(code int, i any) error {
	return r.context.JSON(code, i)
}

func (r *echoResponse) String(code int, s string) error {
	return r.context.String(code, s)
}

func (r *echoResponse) NoContent(code int) error {
	return r.context.NoContent(code)
}

func (r *echoResponse) Written() bool {
	return r.context.Response().Committed
}
