package stages

import (
	"embed"
	"io/fs"
)

//go:embed builtin/*.csv
var builtinFS embed.FS

// Builtin returns a loader over the campaign stages compiled into the binary.
func Builtin(rows, cols int) *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	l := NewFSLoader(sub, rows, cols)
	l.Root = "builtin"
	return l
}
