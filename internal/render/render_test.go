package render

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFS = fstest.MapFS{
	"templates/layouts/base.html": {Data: []byte(`{{define "base"}}<title>{{.Title}}</title>{{template "who" .}}|{{template "content" .}}{{end}}`)},
	"templates/partials/who.html": {Data: []byte(`{{define "who"}}{{.UserEmail}}@{{.CurrentPath}}{{end}}`)},
	"templates/pages/one.html":    {Data: []byte(`{{define "content"}}one {{.Data}}{{end}}`)},
	"templates/pages/two.html":    {Data: []byte(`{{define "content"}}two {{pct .Data}}%{{end}}`)},
	"templates/standalone.html":   {Data: []byte(`hello {{title .}}`)},
}

func renderTo(t *testing.T, r *TemplateRenderer, name string, data interface{}) string {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/somewhere", nil), httptest.NewRecorder())
	c.Set("userEmail", "priya@example.com")

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, c))
	return buf.String()
}

func TestPagesDoNotShareContentBlocks(t *testing.T) {
	r, err := New(testFS)
	require.NoError(t, err)

	assert.Equal(t, "<title>One</title>priya@example.com@/somewhere|one x", renderTo(t, r, "one.html", &PageData{Title: "One", Data: "x"}))
	assert.Equal(t, "<title>Two</title>priya@example.com@/somewhere|two 43%", renderTo(t, r, "two.html", &PageData{Title: "Two", Data: 42.6}))
}

func TestStandaloneTemplate(t *testing.T) {
	r, err := New(testFS)
	require.NoError(t, err)

	assert.True(t, r.Has("standalone.html"))
	assert.Equal(t, "hello Sakhi", renderTo(t, r, "standalone.html", "sakhi"))
}

func TestUnknownTemplate(t *testing.T) {
	r, err := New(testFS)
	require.NoError(t, err)

	err = r.Render(&bytes.Buffer{}, "missing.html", nil, echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
}

func TestBrokenTemplateFailsToParse(t *testing.T) {
	broken := fstest.MapFS{
		"templates/layouts/base.html": {Data: []byte(`{{define "base"}}{{template "content" .}}{{end}}`)},
		"templates/pages/bad.html":    {Data: []byte(`{{define "content"}}{{.Oops{{end}}`)},
	}
	_, err := New(broken)
	assert.Error(t, err)
}
