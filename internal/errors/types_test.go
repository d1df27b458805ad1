package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "InvalidInput", InvalidInputErrorCode.String())
	assert.Equal(t, "NotFound", NotFoundErrorCode.String())
	assert.Equal(t, "ConfigurationError", ConfigurationErrorCode.String())
	assert.Equal(t, "IDGenerationError", IDGenerationErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}

func TestValidationError_MessageIsVerbatim(t *testing.T) {
	assert.Equal(t, "Name cannot be empty", ErrNameEmpty("  ").Error())
	assert.Equal(t, "Invalid email format", ErrInvalidEmail("invalid").Error())
}

func TestValidationError_Fields(t *testing.T) {
	err := ErrInvalidEmail("invalid")

	assert.Equal(t, "email", err.Field)
	assert.Equal(t, "invalid", err.Value)
	assert.Equal(t, "email_format", err.Constraint)
	assert.Equal(t, "email", err.Context()["field"])
	assert.Equal(t, InvalidInputErrorCode, err.ErrorCode())
}

func TestIsInvalidInput_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create user: %w", ErrNameEmpty(""))

	assert.True(t, IsInvalidInput(wrapped))
	assert.Contains(t, wrapped.Error(), "Name cannot be empty")
	assert.False(t, IsInvalidInput(stderrors.New("plain")))
	assert.False(t, IsInvalidInput(nil))
}

func TestNotFound(t *testing.T) {
	err := NotFound("user not found: usr_missing")

	assert.Equal(t, "user not found: usr_missing", err.Error())
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", err)))
	assert.False(t, IsInvalidInput(err))
	assert.False(t, IsNotFound(ErrNameEmpty("")))
}

func TestWrap_IncludesCause(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := WrapConfigError("config.yaml", cause)

	assert.Equal(t, "failed to load config from config.yaml: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ConfigurationErrorCode, CodeOf(err))
	assert.Equal(t, "config.yaml", err.Source)
}

func TestBaseError_Builders(t *testing.T) {
	err := New(UnknownErrorCode, "boom").
		WithContext("k", "v").
		WithSuggestion("try again")

	assert.Equal(t, map[string]any{"k": "v"}, err.Context())
	assert.Equal(t, []string{"try again"}, err.Suggestions())
	assert.Empty(t, New(UnknownErrorCode, "x").Context())
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("env", "PORT", "port must be between 1 and 65535")

	var cfgErr *ConfigurationError
	require.True(t, As(err, &cfgErr))
	assert.Equal(t, "PORT", cfgErr.Key)
	assert.True(t, HasCode(err, ConfigurationErrorCode))
}
