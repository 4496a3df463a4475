package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderToString_LogsFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/carousel/stream", nil)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	broken := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<section id="carousel">`)
		return errors.New("boom")
	})

	html, err := renderToString(c, broken)
	require.Error(t, err)
	assert.Empty(t, html, "a failed render must not yield a partial fragment")
	assert.Contains(t, logs.String(), "Error rendering fragment for /carousel/stream: boom")
}

func TestRenderToString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	html, err := renderToString(c, templ.Raw(`<p>ok</p>`))
	require.NoError(t, err)
	assert.Equal(t, `<p>ok</p>`, html)
}
