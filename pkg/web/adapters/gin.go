package adapters

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/toyz/userregistry/pkg/web"
)

// GinAdapter implements web.WebServerInterface for the Gin framework.
// Gin has no server of its own, so Start wraps the engine in an
// http.Server to make Stop graceful.
type GinAdapter struct {
	engine *gin.Engine
	mws    *web.Middlewares

	mu     sync.Mutex
	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g, mws: web.NewMiddlewares()}
}

// NewDefaultGinAdapter creates a Gin adapter with panic recovery in release mode
func NewDefaultGinAdapter() *GinAdapter {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	return NewGinAdapter(engine)
}

// RegisterRoute registers a route with the Gin server
func (ga *GinAdapter) RegisterRoute(method string, path web.Path, handler web.HandlerFunc, middlewares ...web.MiddlewareFunc) {
	ga.engine.Handle(method, ginPath(path), ga.handlers(handler, ga.mws.For(middlewares))...)
}

// RegisterGroup registers a route group with the Gin server
func (ga *GinAdapter) RegisterGroup(prefix string) web.RouteGroup {
	return &GinRouteGroup{group: ga.engine.Group(prefix), adapter: ga, mws: ga.mws.Child()}
}

// Use wraps routes registered from now on in mw
func (ga *GinAdapter) Use(mw web.MiddlewareFunc) {
	ga.mws.Use(mw)
}

// Start starts the Gin server
func (ga *GinAdapter) Start(addr string) error {
	ga.mu.Lock()
	ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	server := ga.server
	ga.mu.Unlock()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the Gin server if it was started
func (ga *GinAdapter) Stop(ctx context.Context) error {
	ga.mu.Lock()
	server := ga.server
	ga.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

// ginPath renders a web.Path for gin, which names its catch-all parameter
func ginPath(path web.Path) string {
	return path.Convert(":", "*path")
}

func (ga *GinAdapter) handlers(handler web.HandlerFunc, middlewares []web.MiddlewareFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	for _, mw := range middlewares {
		handlers = append(handlers, ga.convertMiddleware(mw))
	}
	return append(handlers, ga.convertHandler(handler))
}

// GinRouteGroup implements web.RouteGroup for Gin
type GinRouteGroup struct {
	group   *gin.RouterGroup
	adapter *GinAdapter
	mws     *web.Middlewares
}

// RegisterRoute registers a route within the group
func (grg *GinRouteGroup) RegisterRoute(method string, path web.Path, handler web.HandlerFunc, middlewares ...web.MiddlewareFunc) {
	grg.group.Handle(method, ginPath(path), grg.adapter.handlers(handler, grg.mws.For(middlewares))...)
}

// Use wraps the group's routes registered from now on in mw
func (grg *GinRouteGroup) Use(mw web.MiddlewareFunc) {
	grg.mws.Use(mw)
}

// Group creates a sub-group
func (grg *GinRouteGroup) Group(prefix string) web.RouteGroup {
	return &GinRouteGroup{group: grg.group.Group(prefix), adapter: grg.adapter, mws: grg.mws.Child()}
}

func (ga *GinAdapter) convertHandler(handler web.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := &GinRequestContext{ctx: c}
		if err := handler(ctx); err != nil && !c.Writer.Written() {
			_ = web.WriteError(ctx, err)
		}
	}
}

// convertMiddleware maps next() onto c.Next(); an error aborts the chain.
func (ga *GinAdapter) convertMiddleware(mw web.MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := &GinRequestContext{ctx: c}
		wrapped := mw(func(web.RequestContext) error {
			c.Next()
			return nil
		})
		if err := wrapped(ctx); err != nil {
			c.Abort()
			if !c.Writer.Written() {
				_ = web.WriteError(ctx, err)
			}
		}
	}
}

// GinRequestContext implements web.RequestContext for Gin
type GinRequestContext struct {
	ctx *gin.Context
}

func (grc *GinRequestContext) Method() string {
	return grc.ctx.Request.Method
}

func (grc *GinRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

func (grc *GinRequestContext) Route() string {
	if route := grc.ctx.FullPath(); route != "" {
		return web.FromColonPath(route)
	}
	return grc.Path()
}

func (grc *GinRequestContext) RealIP() string {
	return grc.ctx.ClientIP()
}

func (grc *GinRequestContext) Param(name string) string {
	if name == "*" {
		return grc.ctx.Param("path")
	}
	return grc.ctx.Param(name)
}

func (grc *GinRequestContext) QueryParam(name string) string {
	return grc.ctx.Query(name)
}

func (grc *GinRequestContext) QueryParams() map[string][]string {
	return grc.ctx.Request.URL.Query()
}

func (grc *GinRequestContext) Request() web.RequestInterface {
	return &ginRequest{ctx: grc.ctx}
}

func (grc *GinRequestContext) Response() web.ResponseInterface {
	return &ginResponse{ctx: grc.ctx}
}

func (grc *GinRequestContext) Bind(i any) error {
	return grc.ctx.ShouldBindJSON(i)
}

func (grc *GinRequestContext) Get(key string) any {
	value, _ := grc.ctx.Get(key)
	return value
}

func (grc *GinRequestContext) Set(key string, val any) {
	grc.ctx.Set(key, val)
}

type ginRequest struct {
	ctx *gin.Context
}

func (r *ginRequest) Header(key string) string {
	return r.ctx.GetHeader(key)
}

func (r *ginRequest) ContentType() string {
	return r.ctx.ContentType()
}

func (r *ginRequest) ContentLength() int64 {
	return r.ctx.Request.ContentLength
}

type ginResponse struct {
	ctx *gin.Context
}

func (r *ginResponse) Status() int {
	return r.ctx.Writer.Status()
}

func (r *ginResponse) Header(key string) string {
	return r.ctx.Writer.Header().Get(key)
}

func (r *ginResponse) SetHeader(key, value string) {
	r.ctx.Header(key, value)
}

func (r *ginResponse) JSON(code int, i any) error {
	r.ctx.JSON(code, i)
	return nil
}

func (r *ginResponse) String(code int, s string) error {
	r.ctx.String(code, s)
	return nil
}

func (r *ginResponse) NoContent(code int) error {
	r.ctx.Status(code)
	r.ctx.Writer.WriteHeaderNow()
	return nil
}

func (r *ginResponse) Written() bool {
	return r.ctx.Writer.Written()
}
