// Package vault builds a tree of documents and directories from a vault on disk.
package vault

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/unicode/norm"

	"github.com/mattsolo1/grove-opener/pkg/frontmatter"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

type scanOptions struct {
	extensions []string
	showHidden bool
	logger     *logrus.Logger
}

// ScanOption configures Scan.
type ScanOption func(*scanOptions)

// WithExtensions sets the file extensions treated as documents (default
// ".md"). The leading dot is optional. An empty list keeps the default.
func WithExtensions(exts ...string) ScanOption {
	return func(o *scanOptions) {
		var normalized []string
		for _, ext := range exts {
			ext = strings.TrimSpace(ext)
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			normalized = append(normalized, ext)
		}
		if len(normalized) > 0 {
			o.extensions = normalized
		}
	}
}

// WithHidden includes dot files and dot directories such as .obsidian.
func WithHidden() ScanOption {
	return func(o *scanOptions) {
		o.showHidden = true
	}
}

// WithLogger sets the logger that receives warnings about unreadable files.
func WithLogger(logger *logrus.Logger) ScanOption {
	return func(o *scanOptions) {
		o.logger = logger
	}
}

// Scan walks root and returns its documents and directories in discovery
// order. Document tags come from YAML frontmatter. Files that cannot be read
// or parsed are still listed, without tags.
func Scan(ctx context.Context, root string, options ...ScanOption) (*tree.Tree, error) {
	opts := &scanOptions{extensions: []string{".md"}}
	for _, opt := range options {
		opt(opts)
	}
	if opts.logger == nil {
		opts.logger = logrus.New()
		opts.logger.SetOutput(io.Discard)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", root)
	}

	t := tree.New()
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			opts.logger.WithError(err).WithField("path", path).Warn("skipping unreadable path")
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == root {
			return nil
		}
		if !opts.showHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = norm.NFC.String(filepath.ToSlash(rel))

		if d.IsDir() {
			t.AddDirectory(rel)
			return nil
		}
		if !opts.isDocument(d.Name()) {
			return nil
		}

		entry := t.AddDocument(rel, readTags(path, opts.logger)...)
		if fi, err := d.Info(); err == nil {
			entry.ModTime = fi.ModTime()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault: %w", err)
	}
	return t, nil
}

func (o *scanOptions) isDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range o.extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

func readTags(path string, logger *logrus.Logger) []string {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Warn("could not read document")
		return nil
	}
	fm, _, err := frontmatter.Parse(string(content))
	if err != nil {
		logger.WithError(err).WithField("path", path).Warn("ignoring malformed frontmatter")
		return nil
	}
	if fm == nil {
		return nil
	}
	tags := fm.AllTags()
	for i, tag := range tags {
		tags[i] = norm.NFC.String(tag)
	}
	return tags
}

// Locate maps a filesystem path or vault-relative path to an entry of t.
// Absolute paths must lie inside root. It returns nil when nothing matches.
func Locate(t *tree.Tree, root, path string) *tree.Entry {
	if path == "" {
		return nil
	}
	if filepath.IsAbs(path) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil
		}
		path = rel
	}
	path = filepath.Clean(path)
	if path == "." {
		return t.Root
	}
	return t.Lookup(norm.NFC.String(filepath.ToSlash(path)))
}
