// Package web embeds the browser dashboard.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// FS serves index.html and its assets from the package root.
var FS = mustSub(static, "static")

func mustSub(f fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(f, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
