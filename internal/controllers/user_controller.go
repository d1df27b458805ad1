package controllers

import (
	"net/http"

	"github.com/toyz/userregistry/internal/api"
	apperrors "github.com/toyz/userregistry/internal/errors"
	"github.com/toyz/userregistry/internal/models"
	"github.com/toyz/userregistry/pkg/web"
)

const (
	apiPrefix = "/api/v1"
	usersPath = apiPrefix + "/users"
)

// UserController serves the user registry over HTTP
type UserController struct {
	API          *api.API
	DefaultLimit int
	MaxPageLimit int
}

// NewUserController creates a controller with page limits from config
func NewUserController(a *api.API, defaultLimit, maxPageLimit int) *UserController {
	return &UserController{API: a, DefaultLimit: defaultLimit, MaxPageLimit: maxPageLimit}
}

// ListUsersResponse is the body of GET /api/v1/users
type ListUsersResponse struct {
	Users  []models.UserView `json:"users"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// RegisterRoutes registers the user routes under /api/v1 and the health
// route at the root of server
func (c *UserController) RegisterRoutes(server web.WebServerInterface) {
	v1 := server.RegisterGroup(apiPrefix)
	v1.RegisterRoute(http.MethodGet, "/users", web.DataHandler(c.ListUsers))
	v1.RegisterRoute(http.MethodPost, "/users", web.ResponseHandler(c.CreateUser))
	v1.RegisterRoute(http.MethodGet, "/users/{id}", web.DataHandler(c.GetUser))

	server.RegisterRoute(http.MethodGet, "/healthz", web.DataHandler(c.Health))
}

// ListUsers handles GET /api/v1/users?limit=N&offset=N
func (c *UserController) ListUsers(ctx web.RequestContext) (any, error) {
	query := web.NewQueryMap(ctx)

	limit, err := query.IntOrDefault("limit", c.defaultLimit())
	if err != nil {
		return nil, err
	}
	offset, err := query.IntOrDefault("offset", api.DefaultOffset)
	if err != nil {
		return nil, err
	}
	if c.MaxPageLimit > 0 && limit > c.MaxPageLimit {
		limit = c.MaxPageLimit
	}

	users, err := c.API.ListUsers(limit, offset)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return ListUsersResponse{
		Users:  users,
		Total:  c.API.CountUsers(),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// GetUser handles GET /api/v1/users/{id}
func (c *UserController) GetUser(ctx web.RequestContext) (any, error) {
	id := ctx.Param("id")
	user, ok := c.API.GetUserByID(id)
	if !ok {
		return nil, toHTTPError(apperrors.NotFound("user not found: " + id))
	}
	return user, nil
}

// CreateUser handles POST /api/v1/users
func (c *UserController) CreateUser(ctx web.RequestContext) (*web.Response, error) {
	var body map[string]any
	if err := ctx.Bind(&body); err != nil {
		return nil, web.ErrBadRequest("request body must be a JSON object")
	}
	if !api.ValidateInputShape(body) {
		return nil, web.ErrBadRequest("request body must contain 'name' and 'email'")
	}

	name, ok := body["name"].(string)
	if !ok {
		return nil, web.ErrBadRequest("'name' must be a string")
	}
	email, ok := body["email"].(string)
	if !ok {
		return nil, web.ErrBadRequest("'email' must be a string")
	}

	user, err := c.API.CreateUser(name, email)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return web.Created(user).WithHeader("Location", usersPath+"/"+user.ID), nil
}

// Health handles GET /healthz
func (c *UserController) Health(web.RequestContext) (any, error) {
	return map[string]any{
		"status": "healthy",
		"users":  c.API.CountUsers(),
	}, nil
}

func (c *UserController) defaultLimit() int {
	if c.DefaultLimit > 0 {
		return c.DefaultLimit
	}
	return api.DefaultLimit
}

func toHTTPError(err error) error {
	switch {
	case apperrors.IsInvalidInput(err):
		return web.ErrBadRequest(err.Error())
	case apperrors.IsNotFound(err):
		return web.ErrNotFound(err.Error())
	default:
		return web.ErrInternalServerError(err.Error())
	}
}
