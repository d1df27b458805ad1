package web

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryMap reads typed values from URL query parameters
type QueryMap struct {
	values url.Values
}

// NewQueryMap creates a QueryMap from the request's query parameters
func NewQueryMap(ctx RequestContext) QueryMap {
	return QueryMap{values: url.Values(ctx.QueryParams())}
}

// IntOrDefault returns the integer value of key, or defaultValue when key is
// absent or blank. A value that is not an integer is a 400.
func (q QueryMap) IntOrDefault(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(q.values.Get(key))
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrBadRequest("query parameter '" + key + "' must be an integer")
	}
	return i, nil
}
