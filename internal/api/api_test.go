package api

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/toyz/userregistry/internal/errors"
	"github.com/toyz/userregistry/internal/models"
	"github.com/toyz/userregistry/internal/registry"
)

func newAPI(t *testing.T) (*API, *registry.UserRegistry) {
	t.Helper()
	reg := registry.New()
	return New(reg), reg
}

func TestListUsers_Defaults(t *testing.T) {
	a, reg := newAPI(t)
	for i := 0; i < 12; i++ {
		reg.Insert(models.User{ID: fmt.Sprintf("usr_%02d", i), Name: fmt.Sprintf("User %d", i)})
	}

	users, err := a.ListUsers(DefaultLimit, DefaultOffset)

	require.NoError(t, err)
	assert.Len(t, users, 10)
	assert.Equal(t, "usr_00", users[0].ID)
}

func TestListUsers_CustomWindow(t *testing.T) {
	a, reg := newAPI(t)
	for i := 0; i < 10; i++ {
		reg.Insert(models.User{ID: fmt.Sprintf("usr_%d", i), Name: fmt.Sprintf("User %d", i)})
	}

	users, err := a.ListUsers(5, 8)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = a.ListUsers(5, 2)
	require.NoError(t, err)
	assert.Len(t, users, 5)
	assert.Equal(t, "usr_2", users[0].ID)
}

func TestListUsers_EmptyRegistry(t *testing.T) {
	a, _ := newAPI(t)

	users, err := a.ListUsers(DefaultLimit, DefaultOffset)

	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestListUsers_NegativeLimit(t *testing.T) {
	a, _ := newAPI(t)

	_, err := a.ListUsers(-5, 0)

	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestGetUserByID_Found(t *testing.T) {
	a, _ := newAPI(t)
	created, err := a.CreateUser("Test User", "test@example.com")
	require.NoError(t, err)

	got, ok := a.GetUserByID(created.ID)

	require.True(t, ok)
	assert.Equal(t, created, got)
	assert.Equal(t, "Test User", got.Name)
	assert.Equal(t, "test@example.com", got.Email)
}

func TestGetUserByID_NotFound(t *testing.T) {
	a, _ := newAPI(t)

	got, ok := a.GetUserByID("not_found_id_12345")

	assert.False(t, ok)
	assert.Equal(t, models.UserView{}, got)
}

func TestCreateUser_Success(t *testing.T) {
	a, _ := newAPI(t)

	view, err := a.CreateUser("New User", "new@example.com")

	require.NoError(t, err)
	assert.Equal(t, "New User", view.Name)
	assert.Equal(t, "new@example.com", view.Email)
	assert.Regexp(t, `^usr_[0-9a-f]{8}$`, view.ID)
	assert.Equal(t, 1, a.CountUsers())
}

func TestCreateUser_InvalidInput(t *testing.T) {
	a, _ := newAPI(t)

	_, err := a.CreateUser("Bad Email", "invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid email format")

	_, err = a.CreateUser("", "valid@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name cannot be empty")

	assert.Equal(t, 0, a.CountUsers())
}

func TestAPIs_AreIsolated(t *testing.T) {
	first, _ := newAPI(t)
	second, _ := newAPI(t)

	created, err := first.CreateUser("Only Here", "here@example.com")
	require.NoError(t, err)

	_, ok := second.GetUserByID(created.ID)
	assert.False(t, ok)
}

func TestValidateInputShape(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		expected bool
	}{
		{"valid", map[string]any{"name": "Test", "email": "test@example.com"}, true},
		{"empty values still valid", map[string]any{"name": "", "email": ""}, true},
		{"non-string values still valid", map[string]any{"name": 1, "email": nil}, true},
		{"extra keys", map[string]any{"name": "a", "email": "b", "role": "admin"}, true},
		{"empty map", map[string]any{}, false},
		{"nil map", nil, false},
		{"missing name", map[string]any{"email": "test@example.com"}, false},
		{"missing email", map[string]any{"name": "Test"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateInputShape(tt.data))
		})
	}
}
