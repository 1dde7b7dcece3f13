package hatch

import (
	"io/fs"

	"github.com/goliatone/go-hatch/pkg/themes"
)

// EmbeddedThemes exposes the built-in theme tree so callers can reuse or
// extend the stock templates without importing the themes package directly.
func EmbeddedThemes() fs.FS {
	fsys := themes.EmbeddedFS()
	return fsys
}
