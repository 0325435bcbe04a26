// Package templates loads the named text templates used to render menus.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"text/template"
)

// Pattern selects template files inside a template directory.
const Pattern = "*.tmpl"

//go:embed defaults/*.tmpl
var defaultsFS embed.FS

// Defaults returns the template files shipped with the binary.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		// Only possible if the embed directive and path disagree.
		return defaultsFS
	}
	return sub
}

// Set is a parsed collection of named templates.
type Set struct {
	root *template.Template
}

// Load parses every template in dir, or the embedded defaults when dir is
// empty, and checks that each of the required names is present.
func Load(dir string, required ...string) (*Set, error) {
	fsys := Defaults()
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTemplateNotFound, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s is not a directory", ErrTemplateNotFound, dir)
		}
		fsys = os.DirFS(dir)
	}
	return Parse(fsys, required...)
}

// Parse parses every template matching Pattern in fsys. Templates fail on
// missing map keys; use the has helper for optional bindings.
func Parse(fsys fs.FS, required ...string) (*Set, error) {
	matches, err := fs.Glob(fsys, Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateParse, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", ErrTemplateNotFound, Pattern)
	}

	root, err := template.New("").
		Option("missingkey=error").
		Funcs(funcs()).
		ParseFS(fsys, Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateParse, err)
	}

	s := &Set{root: root}
	for _, name := range required {
		if s.root.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
	}
	return s, nil
}

// Render executes the named template against data.
func (s *Set) Render(name string, data map[string]any) (string, error) {
	t := s.root.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Names lists the parsed template names in sorted order.
func (s *Set) Names() []string {
	var names []string
	for _, t := range s.root.Templates() {
		if t.Name() != "" {
			names = append(names, t.Name())
		}
	}
	sort.Strings(names)
	return names
}

func funcs() template.FuncMap {
	return template.FuncMap{
		// has reports whether an optional key is bound in the context.
		"has": func(data map[string]any, key string) bool {
			_, ok := data[key]
			return ok
		},
	}
}
