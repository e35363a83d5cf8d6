// Package views renders the site's pages and fragments from embedded
// html/template files. Engine satisfies fiber.Views.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"greenbloom/models"
)

//go:embed templates
var files embed.FS

// Page is the binding every template receives. Data holds the
// page-specific payload.
type Page struct {
	Title       string
	Active      string
	Theme       string
	Season      string
	Notice      string
	CartCount   int
	ChatOpen    bool
	ChatPending bool
	Chat        []models.ChatMessage
	Path        string
	Data        any
}

// Dark reports whether the dark theme is on.
func (p *Page) Dark() bool { return p.Theme == ThemeDark }

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type layoutData struct {
	*Page
	Content template.HTML
}

// Engine holds one template set per page plus the shared partials.
type Engine struct {
	fsys fs.FS

	mu       sync.RWMutex
	partials *template.Template
	pages    map[string]*template.Template
}

func New() *Engine {
	sub, _ := fs.Sub(files, "templates")
	return &Engine{fsys: sub}
}

// NewFromFS loads templates from fsys instead of the embedded set. fsys must
// hold a partials/ directory and one .html file per page.
func NewFromFS(fsys fs.FS) *Engine {
	return &Engine{fsys: fsys}
}

func (e *Engine) Load() error {
	partials, err := template.New("").Funcs(Funcs()).ParseFS(e.fsys, "partials/*.html")
	if err != nil {
		return fmt.Errorf("views: partials: %w", err)
	}

	names, err := fs.Glob(e.fsys, "*.html")
	if err != nil {
		return err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, file := range names {
		t, err := partials.Clone()
		if err != nil {
			return err
		}
		if t, err = t.ParseFS(e.fsys, file); err != nil {
			return fmt.Errorf("views: %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}

	e.mu.Lock()
	e.partials, e.pages = partials, pages
	e.mu.Unlock()
	return nil
}

// Render executes the page or partial called name. With a layout the output
// is wrapped in that partial, which receives the same Page and the rendered
// Content.
func (e *Engine) Render(w io.Writer, name string, binding interface{}, layout ...string) error {
	e.mu.RLock()
	partials, pages := e.partials, e.pages
	e.mu.RUnlock()
	if partials == nil {
		return fmt.Errorf("views: render %q before Load", name)
	}

	page, ok := binding.(*Page)
	if !ok {
		if p, isValue := binding.(Page); isValue {
			page = &p
		} else {
			page = &Page{Data: binding}
		}
	}

	var buf bytes.Buffer
	if t, ok := pages[name]; ok {
		if err := t.ExecuteTemplate(&buf, name+".html", page); err != nil {
			return err
		}
	} else if t := partials.Lookup(name); t != nil {
		if err := t.Execute(&buf, page); err != nil {
			return err
		}
	} else {
		return fmt.Errorf("views: no template %q", name)
	}

	if len(layout) == 0 || layout[0] == "" {
		_, err := buf.WriteTo(w)
		return err
	}
	lt := partials.Lookup(layout[0])
	if lt == nil {
		return fmt.Errorf("views: no layout %q", layout[0])
	}
	return lt.Execute(w, layoutData{Page: page, Content: template.HTML(buf.String())})
}
