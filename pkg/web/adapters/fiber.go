package adapters

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/toyz/userregistry/pkg/web"
)

// FiberAdapter wraps a Fiber app to implement web.WebServerInterface
type FiberAdapter struct {
	app *fiber.App
	mws *web.Middlewares
}

// NewFiberAdapter creates a new Fiber adapter instance
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(web.ErrorBody(err.Error()))
		},
	})

	return &FiberAdapter{app: app, mws: web.NewMiddlewares()}
}

// NewDefaultFiberAdapter creates a Fiber adapter with panic recovery
func NewDefaultFiberAdapter() *FiberAdapter {
	adapter := NewFiberAdapter()
	adapter.app.Use(recover.New())
	return adapter
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method string, path web.Path, handler web.HandlerFunc, middlewares ...web.MiddlewareFunc) {
	fa.app.Add(strings.ToUpper(method), path.ColonPath(), fiberHandlers(handler, fa.mws.For(middlewares))...)
}

// RegisterGroup creates a new route group with the given prefix
func (fa *FiberAdapter) RegisterGroup(prefix string) web.RouteGroup {
	return &FiberRouteGroup{group: fa.app.Group(prefix), mws: fa.mws.Child()}
}

// Use wraps routes registered from now on in mw. Unlike fiber's Use,
// requests that match no route skip it.
func (fa *FiberAdapter) Use(mw web.MiddlewareFunc) {
	fa.mws.Use(mw)
}

// Start starts the Fiber server
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop stops the Fiber server
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// App returns the underlying Fiber app
func (fa *FiberAdapter) App() *fiber.App {
	return fa.app
}

// FiberRouteGroup wraps a Fiber route group to implement web.RouteGroup
type FiberRouteGroup struct {
	group fiber.Router
	mws   *web.Middlewares
}

// RegisterRoute registers a route with this group
func (frg *FiberRouteGroup) RegisterRoute(method string, path web.Path, handler web.HandlerFunc, middlewares ...web.MiddlewareFunc) {
	frg.group.Add(strings.ToUpper(method), path.ColonPath(), fiberHandlers(handler, frg.mws.For(middlewares))...)
}

// Use wraps the group's routes registered from now on in mw
func (frg *FiberRouteGroup) Use(mw web.MiddlewareFunc) {
	frg.mws.Use(mw)
}

// Group creates a sub-group with the given prefix
func (frg *FiberRouteGroup) Group(prefix string) web.RouteGroup {
	return &FiberRouteGroup{group: frg.group.Group(prefix), mws: frg.mws.Child()}
}

func fiberHandlers(handler web.HandlerFunc, middlewares []web.MiddlewareFunc) []fiber.Handler {
	handlers := make([]fiber.Handler, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, convertMiddlewareToFiber(mw))
	}
	return append(handlers, convertHandlerToFiber(handler))
}

func convertHandlerToFiber(handler web.HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := &FiberRequestContext{ctx: c}
		if err := handler(ctx); err != nil {
			return web.WriteError(ctx, err)
		}
		return nil
	}
}

func convertMiddlewareToFiber(mw web.MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := &FiberRequestContext{ctx: c}
		err := mw(func(web.RequestContext) error {
			return c.Next()
		})(ctx)
		if err != nil {
			return web.WriteError(ctx, err)
		}
		return nil
	}
}

// FiberRequestContext wraps fiber.Ctx to implement web.RequestContext
type FiberRequestContext struct {
	ctx *fiber.Ctx
}

func (frc *FiberRequestContext) Method() string {
	return frc.ctx.Method()
}

func (frc *FiberRequestContext) Path() string {
	return frc.ctx.Path()
}

func (frc *FiberRequestContext) Route() string {
	if route := frc.ctx.Route(); route != nil && route.Path != "" {
		return web.FromColonPath(route.Path)
	}
	return frc.Path()
}

func (frc *FiberRequestContext) RealIP() string {
	return frc.ctx.IP()
}

func (frc *FiberRequestContext) Param(name string) string {
	return frc.ctx.Params(name)
}

func (frc *FiberRequestContext) QueryParam(key string) string {
	return frc.ctx.Query(key)
}

func (frc *FiberRequestContext) QueryParams() map[string][]string {
	result := make(map[string][]string)
	frc.ctx.Request().URI().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		result[k] = append(result[k], string(value))
	})
	return result
}

func (frc *FiberRequestContext) Request() web.RequestInterface {
	return &fiberRequest{ctx: frc.ctx}
}

func (frc *FiberRequestContext) Response() web.ResponseInterface {
	return &fiberResponse{ctx: frc.ctx}
}

func (frc *FiberRequestContext) Bind(obj any) error {
	return frc.ctx.BodyParser(obj)
}

func (frc *FiberRequestContext) Get(key string) any {
	return frc.ctx.Locals(key)
}

func (frc *FiberRequestContext) Set(key string, val any) {
	frc.ctx.Locals(key, val)
}

type fiberRequest struct {
	ctx *fiber.Ctx
}

func (r *fiberRequest) Header(key string) string {
	return r.ctx.Get(key)
}

func (r *fiberRequest) ContentType() string {
	return r.ctx.Get(fiber.HeaderContentType)
}

func (r *fiberRequest) ContentLength() int64 {
	return int64(len(r.ctx.Body()))
}

type fiberResponse struct {
	ctx *fiber.Ctx
}

func (r *fiberResponse) Status() int {
	return r.ctx.Response().StatusCode()
}

func (r *fiberResponse) Header(key string) string {
	return string(r.ctx.Response().Header.Peek(key))
}

func (r *fiberResponse) SetHeader(key, value string) {
	r.ctx.Set(key, value)
}

func (r *fiberResponse) JSON(code int, data any) error {
	return r.ctx.Status(code).JSON(data)
}

func (r *fiberResponse) String(code int, s string) error {
	return r.ctx.Status(code).SendString(s)
}

func (r *fiberResponse) NoContent(code int) error {
	return r.ctx.SendStatus(code)
}

// Written reports whether a body or a non-default status has been set.
func (r *fiberResponse) Written() bool {
	return len(r.ctx.Response().Body()) > 0 || r.ctx.Response().StatusCode() != http.StatusOK
}
