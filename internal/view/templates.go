package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/gattabara/site/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every embedded page together with the shared partials.
// Template names are the file names, e.g. "home.html".
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Static returns the embedded stylesheet and editor script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FuncMap 返回模板中可用的辅助函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"slug":     content.Slug,
		"linkIcon": func(label, rawURL string) template.HTML { return template.HTML(LinkIconSVG(label, rawURL)) },
		"isVideo":  isVideoRef,
		"hasText":  func(s string) bool { return strings.TrimSpace(s) != "" },
		"dict":     dict,
		"active": func(current, href string) bool {
			if href == "/" {
				return current == "/"
			}
			return href != "" && strings.HasPrefix(current, href)
		},
	}
}

// dict builds a map from alternating keys and values so partials can take
// named arguments.
func dict(pairs ...interface{}) (map[string]interface{}, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]interface{}, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func isVideoRef(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	if strings.HasPrefix(lower, "data:video/") {
		return true
	}
	for _, ext := range []string{".mp4", ".webm", ".mov", ".ogg", ".m4v"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
