package web

import (
	"strings"
	"sync"
)

// RouteInfo contains metadata about a registered route
type RouteInfo struct {
	Method string
	Path   Path
	// Middlewares is the number of route-level middlewares
	Middlewares int
}

// RouteRecorder is a WebServerInterface that remembers every route
// registered through it before passing it on.
type RouteRecorder struct {
	WebServerInterface

	mu     sync.RWMutex
	routes []RouteInfo
}

// RecordRoutes wraps server in a RouteRecorder
func RecordRoutes(server WebServerInterface) *RouteRecorder {
	return &RouteRecorder{WebServerInterface: server}
}

// RegisterRoute records the route and registers it on the wrapped server
func (r *RouteRecorder) RegisterRoute(method string, path Path, handler HandlerFunc, middlewares ...MiddlewareFunc) {
	r.record(method, path, len(middlewares))
	r.WebServerInterface.RegisterRoute(method, path, handler, middlewares...)
}

// RegisterGroup returns a group whose routes are recorded with the prefix
// prepended
func (r *RouteRecorder) RegisterGroup(prefix string) RouteGroup {
	return &recordingGroup{recorder: r, prefix: prefix, group: r.WebServerInterface.RegisterGroup(prefix)}
}

func (r *RouteRecorder) record(method string, path Path, middlewares int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, RouteInfo{Method: method, Path: path, Middlewares: middlewares})
}

// GetAllRoutes returns all recorded routes in registration order
func (r *RouteRecorder) GetAllRoutes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.routes...)
}

type recordingGroup struct {
	recorder *RouteRecorder
	prefix   string
	group    RouteGroup
}

func (g *recordingGroup) RegisterRoute(method string, path Path, handler HandlerFunc, middlewares ...MiddlewareFunc) {
	g.recorder.record(method, joinPath(g.prefix, path), len(middlewares))
	g.group.RegisterRoute(method, path, handler, middlewares...)
}

func (g *recordingGroup) Use(mw MiddlewareFunc) {
	g.group.Use(mw)
}

func (g *recordingGroup) Group(prefix string) RouteGroup {
	return &recordingGroup{recorder: g.recorder, prefix: g.prefix + prefix, group: g.group.Group(prefix)}
}

func joinPath(prefix string, path Path) Path {
	return Path(strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path.Raw(), "/"))
}
