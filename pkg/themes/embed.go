package themes

import (
	"embed"
	"io/fs"
)

//go:embed all:themes
var embedded embed.FS

// EmbeddedFS returns the theme layers shipped with the distribution. The tree
// has one top-level directory per layer.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "themes")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic("themes: embedded tree missing: " + err.Error())
	}
	return sub
}
