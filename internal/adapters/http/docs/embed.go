package docs

import (
	"embed"
	"io/fs"
	"net/http"
)

// OpenAPI contains the embedded OpenAPI YAML specification.
//
//go:embed openapi.yaml
var OpenAPI []byte

//go:embed static
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded pages.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

func page(name string) []byte {
	b, err := fs.ReadFile(staticFS, "static/"+name)
	if err != nil {
		panic("docs: missing embedded page " + name)
	}
	return b
}
