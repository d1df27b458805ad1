package errors

import "fmt"

// ConfigurationError reports a bad configuration source or value
type ConfigurationError struct {
	*BaseError
	Source string // file path, "env" or "flags"
	Key    string // offending key, if known
}

// NewConfigurationError creates a configuration error for key
func NewConfigurationError(source, key, message string) *ConfigurationError {
	return &ConfigurationError{
		BaseError: New(ConfigurationErrorCode, message).WithContext("source", source),
		Source:    source,
		Key:       key,
	}
}

// WrapConfigError wraps a failure to load configuration from source
func WrapConfigError(source string, cause error) *ConfigurationError {
	return &ConfigurationError{
		BaseError: Wrap(ConfigurationErrorCode, fmt.Sprintf("failed to load config from %s", source), cause),
		Source:    source,
	}
}

// WrapWithOperation wraps an error with an operation context
func WrapWithOperation(code ErrorCode, operation, item string, cause error) *BaseError {
	return Wrap(code, fmt.Sprintf("failed to %s %s", operation, item), cause)
}
