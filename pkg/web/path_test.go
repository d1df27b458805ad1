package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath_Parts(t *testing.T) {
	parts := NewPath("/users/{id:int}/files/{*}").Parts()

	assert.Equal(t, []PathPart{
		{Type: StaticPart, Value: "/users/"},
		{Type: ParameterPart, Value: "id", ParamType: "int"},
		{Type: StaticPart, Value: "/files/"},
		{Type: WildcardPart, Value: "*"},
	}, parts)
}

func TestPath_UnterminatedBraceIsLiteral(t *testing.T) {
	parts := Path("/users/{id").Parts()

	assert.Equal(t, []PathPart{
		{Type: StaticPart, Value: "/users/"},
		{Type: StaticPart, Value: "{id"},
	}, parts)
}

func TestPath_Convert(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{"/api/v1/users", "/api/v1/users"},
		{"/api/v1/users/{id}", "/api/v1/users/:id"},
		{"/static/{*}", "/static/*"},
		{"/orgs/{org}/users/{id:string}", "/orgs/:org/users/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.path.Raw(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.ColonPath())
		})
	}

	assert.Equal(t, "/files/*path", Path("/files/{*}").Convert(":", "*path"))
}

func TestFromColonPath(t *testing.T) {
	assert.Equal(t, "/api/v1/users/{id}", FromColonPath("/api/v1/users/:id"))
	assert.Equal(t, "/files/{*}", FromColonPath("/files/*path"))
	assert.Equal(t, "/healthz", FromColonPath("/healthz"))
}
