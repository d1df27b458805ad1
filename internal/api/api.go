// Package api is the presentation layer over the user registry. It turns
// registry records into UserView values and keeps callers away from the
// internal User type.
package api

import (
	"github.com/toyz/userregistry/internal/models"
)

const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// UserStore is the part of the registry the API depends on
type UserStore interface {
	Create(req models.CreateUserRequest) (models.User, error)
	Get(id string) (models.User, bool)
	List(limit, offset int) ([]models.User, error)
	Len() int
}

// API exposes the registry to external callers
type API struct {
	store UserStore
}

// New creates an API backed by store
func New(store UserStore) *API {
	return &API{store: store}
}

// ListUsers returns at most limit users starting at offset.
// DefaultLimit and DefaultOffset are the conventional values.
func (a *API) ListUsers(limit, offset int) ([]models.UserView, error) {
	users, err := a.store.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return models.ToViews(users), nil
}

// GetUserByID returns the user with id and whether it was found
func (a *API) GetUserByID(id string) (models.UserView, bool) {
	user, ok := a.store.Get(id)
	if !ok {
		return models.UserView{}, false
	}
	return models.ToView(user), true
}

// CreateUser creates a user. Validation failures are returned unchanged
// and carry the messages "Name cannot be empty" or "Invalid email format".
func (a *API) CreateUser(name, email string) (models.UserView, error) {
	user, err := a.store.Create(models.CreateUserRequest{Name: name, Email: email})
	if err != nil {
		return models.UserView{}, err
	}
	return models.ToView(user), nil
}

// CountUsers returns the number of registered users
func (a *API) CountUsers() int {
	return a.store.Len()
}

// ValidateInputShape reports whether data has both "name" and "email" keys.
// Only presence is checked; values are not inspected.
func ValidateInputShape(data map[string]any) bool {
	if len(data) == 0 {
		return false
	}
	for _, key := range []string{"name", "email"} {
		if _, ok := data[key]; !ok {
			return false
		}
	}
	return true
}
