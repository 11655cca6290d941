package tree

import (
	"strings"
	"time"
)

// Kind distinguishes documents from directories.
type Kind int

const (
	Document Kind = iota
	Directory
)

func (k Kind) String() string {
	switch k {
	case Document:
		return "document"
	case Directory:
		return "directory"
	default:
		return "unknown"
	}
}

// Entry represents a single node in the vault tree. It can be a document or a directory.
// Entries are snapshots: once a Tree has been handed to a resolver nothing mutates them.
type Entry struct {
	Path    string // slash-delimited, relative to the vault root; the root itself is ""
	Name    string
	Kind    Kind
	Tags    []string // documents only
	ModTime time.Time

	// Hierarchy
	Parent   *Entry
	Children []*Entry // directories only, in discovery order
}

// IsDir reports whether the entry is a directory.
func (e *Entry) IsDir() bool {
	return e.Kind == Directory
}

// IsRoot reports whether the entry is the vault root.
func (e *Entry) IsRoot() bool {
	return e.Parent == nil && e.Kind == Directory && e.Path == ""
}

// Segments splits the entry path into its components.
func (e *Entry) Segments() []string {
	return Split(e.Path)
}

// Documents returns the immediate document children of a directory, in discovery order.
func (e *Entry) Documents() []*Entry {
	var docs []*Entry
	for _, child := range e.Children {
		if child.Kind == Document {
			docs = append(docs, child)
		}
	}
	return docs
}

// Dir returns the directory an entry lives in; for directories that is the entry itself.
func (e *Entry) Dir() *Entry {
	if e == nil || e.IsDir() {
		return e
	}
	return e.Parent
}

func (e *Entry) String() string {
	if e.IsRoot() {
		return "/"
	}
	return e.Path
}

// Split returns the non-empty segments of a slash-delimited path.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Clean normalizes a vault-relative path: backslashes become slashes and
// leading, trailing and duplicate separators are dropped. "/" and "" both
// name the root.
func Clean(path string) string {
	return strings.Join(Split(strings.ReplaceAll(path, "\\", "/")), "/")
}

// Tree is a flat-indexed view of the vault hierarchy.
type Tree struct {
	Root *Entry

	byPath      map[string]*Entry
	documents   []*Entry
	directories []*Entry
}

// New creates an empty tree holding only the root directory.
func New() *Tree {
	root := &Entry{Kind: Directory}
	return &Tree{
		Root:   root,
		byPath: map[string]*Entry{"": root},
	}
}

// AddDocument records a document, creating any missing parent directories.
// Adding a path twice returns the existing entry.
func (t *Tree) AddDocument(path string, tags ...string) *Entry {
	path = Clean(path)
	if existing, ok := t.byPath[path]; ok {
		return existing
	}
	parent := t.ensureDir(parentPath(path))
	entry := &Entry{
		Path:   path,
		Name:   baseName(path),
		Kind:   Document,
		Tags:   append([]string(nil), tags...),
		Parent: parent,
	}
	t.attach(parent, entry)
	t.documents = append(t.documents, entry)
	return entry
}

// AddDirectory records a directory and any missing ancestors.
func (t *Tree) AddDirectory(path string) *Entry {
	return t.ensureDir(Clean(path))
}

// Lookup returns the entry at path, or nil.
func (t *Tree) Lookup(path string) *Entry {
	return t.byPath[Clean(path)]
}

// Documents returns every document in discovery order. The slice is a copy.
func (t *Tree) Documents() []*Entry {
	return append([]*Entry(nil), t.documents...)
}

// Directories returns every directory except the root in discovery order. The slice is a copy.
func (t *Tree) Directories() []*Entry {
	return append([]*Entry(nil), t.directories...)
}

// Len returns the number of entries, root excluded.
func (t *Tree) Len() int {
	return len(t.documents) + len(t.directories)
}

func (t *Tree) ensureDir(path string) *Entry {
	if existing, ok := t.byPath[path]; ok {
		return existing
	}
	parent := t.ensureDir(parentPath(path))
	dir := &Entry{
		Path:   path,
		Name:   baseName(path),
		Kind:   Directory,
		Parent: parent,
	}
	t.attach(parent, dir)
	t.directories = append(t.directories, dir)
	return dir
}

func (t *Tree) attach(parent, child *Entry) {
	parent.Children = append(parent.Children, child)
	t.byPath[child.Path] = child
}

func parentPath(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}

func baseName(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}
