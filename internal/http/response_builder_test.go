package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testPages(t *testing.T) map[string]*template.Template {
	t.Helper()
	layout := `{{define "layout"}}<h1>{{.Title}}</h1>{{template "content" .}}{{end}}`
	pages := map[string]*template.Template{}
	for name, content := range map[string]string{
		"hello":   `{{define "content"}}<p>{{.Message}}</p>{{end}}`,
		"broken":  `{{define "content"}}{{.Missing.Field}}{{end}}`,
		pageError: `{{define "content"}}<p>{{.Status}} {{.Message}}</p>{{end}}`,
	} {
		pages[name] = template.Must(template.Must(template.New(name).Parse(layout)).Parse(content))
	}
	return pages
}

func TestResponseBuilder_Basic(t *testing.T) {
	rr := httptest.NewRecorder()
	data := struct{ Title, Message string }{"Hi", "<b>x</b>"}
	if err := NewPage("hello", data).Status(http.StatusAccepted).NoStore().Write(rr, testPages(t)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if rr.Code != http.StatusAccepted {
		t.Errorf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if !strings.Contains(rr.Body.String(), "&lt;b&gt;x&lt;/b&gt;") {
		t.Errorf("body not escaped: %q", rr.Body.String())
	}
}

func TestResponseBuilder_FailureWritesNothing(t *testing.T) {
	pages := testPages(t)

	rr := httptest.NewRecorder()
	if err := NewPage("broken", struct{ Title string }{"x"}).Write(rr, pages); err == nil {
		t.Fatal("expected template error")
	}
	if rr.Body.Len() != 0 || len(rr.Header()) != 0 {
		t.Errorf("nothing should be written, got body %q", rr.Body.String())
	}

	if err := NewPage("missing", nil).Write(httptest.NewRecorder(), pages); err == nil {
		t.Error("expected unknown page error")
	}
}

func TestErrorPage(t *testing.T) {
	tests := []struct {
		name    string
		builder *ResponseBuilder
		status  int
	}{
		{"not found", NotFoundError("gone"), http.StatusNotFound},
		{"bad request", BadRequestError("gone"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			if err := tt.builder.Write(rr, testPages(t)); err != nil {
				t.Fatalf("Write() error: %v", err)
			}
			if rr.Code != tt.status {
				t.Errorf("status = %d, want %d", rr.Code, tt.status)
			}
			if !strings.Contains(rr.Body.String(), "gone") {
				t.Errorf("body missing message: %q", rr.Body.String())
			}
		})
	}
}
