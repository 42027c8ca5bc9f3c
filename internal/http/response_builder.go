// Package http provides HTTP server and handler implementations.
//
// This file implements a builder for page responses. Templates are executed
// into a buffer first so a failing template never leaves a half-written page.

package http

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
)

// ResponseBuilder provides a fluent API for building page responses.
type ResponseBuilder struct {
	statusCode int
	page       string
	data       any
	headers    map[string]string
}

// NewPage creates a builder rendering the named page with a 200 status.
func NewPage(page string, data any) *ResponseBuilder {
	return &ResponseBuilder{
		statusCode: http.StatusOK,
		page:       page,
		data:       data,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Header adds a custom header to the response.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// NoStore marks the response as uncacheable.
func (b *ResponseBuilder) NoStore() *ResponseBuilder {
	return b.Header("Cache-Control", "no-store")
}

// Write executes the page template and sends it. Nothing is written when the
// template fails.
func (b *ResponseBuilder) Write(w http.ResponseWriter, pages map[string]*template.Template) error {
	t, ok := pages[b.page]
	if !ok {
		return fmt.Errorf("unknown page %q", b.page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", b.data); err != nil {
		return fmt.Errorf("execute %s: %w", b.page, err)
	}

	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(b.statusCode)
	_, _ = buf.WriteTo(w)
	return nil
}

// errorView is the data behind the error page.
type errorView struct {
	layout
	Status  int
	Message string
}

// ErrorPage creates a response rendering the error page.
func ErrorPage(statusCode int, message string) *ResponseBuilder {
	return NewPage(pageError, errorView{
		layout:  layout{Title: http.StatusText(statusCode)},
		Status:  statusCode,
		Message: message,
	}).Status(statusCode).NoStore()
}

// NotFoundError creates a 404 Not Found response.
func NotFoundError(message string) *ResponseBuilder {
	return ErrorPage(http.StatusNotFound, message)
}

// BadRequestError creates a 400 Bad Request response.
func BadRequestError(message string) *ResponseBuilder {
	return ErrorPage(http.StatusBadRequest, message)
}
