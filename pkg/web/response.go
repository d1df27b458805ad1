package web

import (
	"errors"
	"net/http"
)

// Response represents an HTTP response with custom status code and body.
// Handlers return it when they need to control the status code or headers.
type Response struct {
	StatusCode int               `json:"-"`
	Headers    map[string]string `json:"-"`
	Body       any               `json:"body,omitempty"`
}

// NewResponse creates a new Response with the specified status code and body
func NewResponse(statusCode int, body any) *Response {
	return &Response{
		StatusCode: statusCode,
		Body:       body,
	}
}

// Created creates a 201 Created response with the given body
func Created(body any) *Response {
	return NewResponse(http.StatusCreated, body)
}

// WithHeader sets a header on the response
func (r *Response) WithHeader(key, value string) *Response {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

// ErrorBody is the JSON shape of every error response.
func ErrorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// Write renders resp on ctx.
func Write(ctx RequestContext, resp *Response) error {
	if resp == nil {
		return WriteError(ctx, ErrInternalServerError("handler returned nil response"))
	}
	for k, v := range resp.Headers {
		ctx.Response().SetHeader(k, v)
	}
	if resp.Body == nil {
		return ctx.Response().NoContent(resp.StatusCode)
	}
	return ctx.Response().JSON(resp.StatusCode, resp.Body)
}

// WriteError renders err as {"error": message}. *HttpError keeps its status
// code, anything else becomes a 500.
func WriteError(ctx RequestContext, err error) error {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return ctx.Response().JSON(httpErr.StatusCode, ErrorBody(httpErr.Message))
	}
	return ctx.Response().JSON(http.StatusInternalServerError, ErrorBody(err.Error()))
}

// DataHandler adapts a (data, error) handler: data is written as 200 OK.
func DataHandler(fn func(RequestContext) (any, error)) HandlerFunc {
	return func(ctx RequestContext) error {
		data, err := fn(ctx)
		if err != nil {
			return WriteError(ctx, err)
		}
		return ctx.Response().JSON(http.StatusOK, data)
	}
}

// ResponseHandler adapts a (*Response, error) handler.
func ResponseHandler(fn func(RequestContext) (*Response, error)) HandlerFunc {
	return func(ctx RequestContext) error {
		resp, err := fn(ctx)
		if err != nil {
			return WriteError(ctx, err)
		}
		return Write(ctx, resp)
	}
}
