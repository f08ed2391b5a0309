// Package export writes the catalog as markdown notes with YAML
// frontmatter, one file per book.
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"libreria/internal/catalog"
)

// frontmatter is an insertion-ordered key/value set serialized as YAML.
type frontmatter struct {
	keys   []string
	fields map[string]any
}

func newFrontmatter() *frontmatter {
	return &frontmatter{fields: make(map[string]any)}
}

func (f *frontmatter) set(key string, value any) {
	if _, exists := f.fields[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.fields[key] = value
}

// MarshalYAML implements yaml.Marshaler, preserving insertion order.
func (f *frontmatter) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range f.keys {
		var keyNode, valueNode yaml.Node
		keyNode.SetString(key)
		if err := valueNode.Encode(f.fields[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &keyNode, &valueNode)
	}
	return node, nil
}

// WriteCatalog writes one markdown note per book into directory, resolving
// author and category names from the snapshot. Dangling references render
// as empty names. Returns the number of files written.
func WriteCatalog(snap catalog.Snapshot, directory string) (int, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	authorNames := make(map[int]string, len(snap.Authors))
	for _, a := range snap.Authors {
		authorNames[a.ID] = a.Name
	}
	categoryNames := make(map[int]string, len(snap.Categories))
	for _, c := range snap.Categories {
		categoryNames[c.ID] = c.Name
	}

	written := 0
	usedNames := make(map[string]bool, len(snap.Books))
	for _, b := range snap.Books {
		data, err := renderBook(b, authorNames[b.AuthorID], categoryNames[b.CategoryID])
		if err != nil {
			return written, fmt.Errorf("rendering %q: %w", b.Title, err)
		}

		// Books sharing a title get the id as a suffix so no note
		// overwrites another.
		name := sanitizeFilename(b.Title)
		if usedNames[name] {
			name = fmt.Sprintf("%s-%d", name, b.ID)
		}
		usedNames[name] = true

		path := filepath.Join(directory, name+".md")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		written++
	}

	slog.Info("Catalog exported", "directory", directory, "files", written)
	return written, nil
}

func renderBook(b catalog.Book, authorName, categoryName string) ([]byte, error) {
	fm := newFrontmatter()
	fm.set("title", b.Title)
	if b.Subtitle != "" {
		fm.set("subtitle", b.Subtitle)
	}
	fm.set("type", "book")
	fm.set("isbn", b.ISBN)
	fm.set("author", authorName)
	fm.set("category", categoryName)
	if b.Publisher != "" {
		fm.set("publisher", b.Publisher)
	}
	if b.Year > 0 {
		fm.set("year", b.Year)
	}
	fm.set("language", b.Language)
	if b.PageCount > 0 {
		fm.set("pages", b.PageCount)
	}
	fm.set("format", b.Format)
	fm.set("price", b.Price)
	fm.set("stock", b.Stock)
	fm.set("status", b.Status)
	if b.CoverURL != "" {
		fm.set("cover", b.CoverURL)
	}

	fmBytes, err := yaml.Marshal(fm)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fmBytes)
	buf.WriteString("---\n")
	buf.WriteString("\n# " + b.Title + "\n")
	if b.Synopsis != "" {
		buf.WriteString("\n" + b.Synopsis + "\n")
	}

	return buf.Bytes(), nil
}

// sanitizeFilename replaces characters that are unsafe in file names.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	if name == "" {
		name = "untitled"
	}
	return name
}
