package main

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Zachkp/gamedev-portfolio/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var printer = message.NewPrinter(language.English)

var templateFuncs = template.FuncMap{
	"devtime": catalog.FormatDevTime,
	"count":   formatCount,
	"thumb":   videoThumbnail,
	"join":    strings.Join,
	"eqfold":  strings.EqualFold,
}

// formatCount renders an integer with thousands separators.
func formatCount(n any) string {
	return printer.Sprintf("%d", n)
}

func videoThumbnail(raw string) string {
	id, ok := catalog.YouTubeID(raw)
	if !ok {
		return ""
	}
	return catalog.ThumbnailURL(id)
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

func staticFiles() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// render writes a templ component as the response.
func render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		c.String(http.StatusInternalServerError, "failed to render")
	}
}

// renderToString renders a fragment for embedding in a page or an SSE
// event. A failed render is logged and yields no output, never a partial
// fragment.
func renderToString(c *gin.Context, component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(c.Request.Context(), &buf); err != nil {
		log.Printf("Error rendering fragment for %s: %v", c.Request.URL.Path, err)
		return "", err
	}
	return buf.String(), nil
}
