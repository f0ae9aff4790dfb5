// Package views holds the server-rendered page templates, embedded in the
// binary so deployments carry no template directory.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/django/v3"
)

//go:embed *.html
var files embed.FS

// Engine returns a Fiber views engine rendering the embedded templates.
func Engine() *django.Engine {
	return django.NewFileSystem(http.FS(files), ".html")
}
