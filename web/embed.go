package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

// Assets holds the page template and the viewer's static files.
//
//go:embed templates/*.tmpl static/*
var Assets embed.FS

// StaticFS serves the map viewer's stylesheet and script under /static.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(Assets, "static")
	if err != nil {
		// static/ is part of the embed pattern above
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}

// Templates parses the viewer page.
func Templates() *template.Template {
	return template.Must(template.ParseFS(Assets, "templates/*.tmpl"))
}
