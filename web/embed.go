package web

import (
	"embed"
	"io/fs"
)

// StaticFS embeds the browser UI (html/css/js).
//
//go:embed static/*
var StaticFS embed.FS

// Assets returns the UI files rooted at the static directory
func Assets() fs.FS {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
