// Package web bundles the page templates and static assets into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/layouts templates/partials templates/pages static
var files embed.FS

// Templates returns the html/template tree rooted at templates/
func Templates() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the static asset tree rooted at static/
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
