package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_DefaultEmail(t *testing.T) {
	user := User{ID: "usr_456", Name: "No Email User"}

	assert.Equal(t, "usr_456", user.ID)
	assert.Equal(t, "No Email User", user.Name)
	assert.Equal(t, "", user.Email)
}

func TestUser_Equality(t *testing.T) {
	a := User{ID: "usr_789", Name: "Same", Email: "same@test.com"}
	b := User{ID: "usr_789", Name: "Same", Email: "same@test.com"}
	c := User{ID: "usr_002", Name: "Same", Email: "same@test.com"}

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestToView(t *testing.T) {
	user := User{ID: "usr_0a1b2c3d", Name: "Ada", Email: "ada@example.com"}

	view := ToView(user)

	assert.Equal(t, UserView{ID: "usr_0a1b2c3d", Name: "Ada", Email: "ada@example.com"}, view)
}

func TestToViews_PreservesOrder(t *testing.T) {
	users := []User{
		{ID: "usr_2", Name: "Two"},
		{ID: "usr_1", Name: "One"},
	}

	views := ToViews(users)

	assert.Len(t, views, 2)
	assert.Equal(t, "usr_2", views[0].ID)
	assert.Equal(t, "usr_1", views[1].ID)
}

func TestToViews_Empty(t *testing.T) {
	views := ToViews(nil)

	assert.NotNil(t, views)
	assert.Empty(t, views)
}
