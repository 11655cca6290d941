//go:build integration
// +build integration

package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattsolo1/grove-opener/pkg/index"
	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/picker"
	"github.com/mattsolo1/grove-opener/pkg/resolve"
	"github.com/mattsolo1/grove-opener/pkg/vault"
)

func writeVault(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
}

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	ctx := context.Background()
	root := t.TempDir()
	writeVault(t, root, map[string]string{
		"journal/2024/01.md":      "---\ntags: daily\n---\n",
		"journal/2024/02.md":      "---\ntags: daily\n---\n",
		"work/alpha/plan.md":      "---\ntags: [project/alpha]\n---\n",
		"work/beta/plan.md":       "---\ntags: [project/beta]\n---\n",
		"work/beta/notes/todo.md": "",
		".obsidian/workspace.md":  "",
	})

	// Test 1: Scan and index round trip
	t.Run("ScanAndIndex", func(t *testing.T) {
		listing, err := vault.Scan(ctx, root)
		if err != nil {
			t.Fatalf("Failed to scan vault: %v", err)
		}
		if got := len(listing.Documents()); got != 5 {
			t.Errorf("Expected 5 documents, got %d", got)
		}

		idx, err := index.Open(filepath.Join(t.TempDir(), "index.db"))
		if err != nil {
			t.Fatalf("Failed to open index: %v", err)
		}
		defer idx.Close()

		if err := idx.Store(ctx, root, listing); err != nil {
			t.Fatalf("Failed to store listing: %v", err)
		}
		cached, err := idx.Load(ctx, root)
		if err != nil {
			t.Fatalf("Failed to load listing: %v", err)
		}

		want := listing.Documents()
		got := cached.Documents()
		if len(got) != len(want) {
			t.Fatalf("Expected %d cached documents, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i].Path != want[i].Path {
				t.Errorf("Document %d: expected %s, got %s", i, want[i].Path, got[i].Path)
			}
		}
	})

	// Test 2: Nearest match is offered first and the recursive picker drills down
	t.Run("ResolveNearest", func(t *testing.T) {
		listing, err := vault.Scan(ctx, root)
		if err != nil {
			t.Fatalf("Failed to scan vault: %v", err)
		}

		var prompts [][]string
		chooser := picker.ChooserFunc(func(_ context.Context, _ string, options []picker.Option) (int, error) {
			labels := make([]string, len(options))
			for i, o := range options {
				labels[i] = o.Label
			}
			prompts = append(prompts, labels)
			return 0, nil
		})

		r := resolve.New(listing, picker.NewRecursive(chooser),
			resolve.WithNoteFilterSets(models.NoteFilterSet{Name: "plans", IncludeName: "plan"}))

		note, err := r.ResolveNoteByName(ctx, "plans", listing.Lookup("work/beta/notes"))
		if err != nil {
			t.Fatalf("Failed to resolve note: %v", err)
		}
		if note.Path != "work/beta/plan.md" {
			t.Errorf("Expected work/beta/plan.md, got %s", note.Path)
		}
		if len(prompts) != 1 || len(prompts[0]) != 2 || prompts[0][0] != "work/beta" {
			t.Errorf("Expected one prompt offering work/beta first, got %v", prompts)
		}
	})

	// Test 3: Tag filters and folder scope
	t.Run("TagsAndFolders", func(t *testing.T) {
		listing, err := vault.Scan(ctx, root)
		if err != nil {
			t.Fatalf("Failed to scan vault: %v", err)
		}

		r := resolve.New(listing, picker.NewFlat(nil),
			resolve.WithDirectoryScope(resolve.DirectoryScope{Root: "work", Depth: 1}))

		candidates, err := r.NoteCandidates(models.NoteFilterSet{Name: "daily", IncludeTags: "daily"}, nil)
		if err != nil {
			t.Fatalf("Failed to filter notes: %v", err)
		}
		if len(candidates) != 2 {
			t.Errorf("Expected 2 daily notes, got %d", len(candidates))
		}

		dir, err := r.ResolveFolder(ctx, models.FolderFilterSet{Name: "alpha", IncludeName: "alpha"})
		if err != nil {
			t.Fatalf("Failed to resolve folder: %v", err)
		}
		if dir.Path != "work/alpha" {
			t.Errorf("Expected work/alpha, got %s", dir.Path)
		}

		_, err = r.ResolveFolder(ctx, models.FolderFilterSet{Name: "notes", IncludeName: "notes"})
		var noMatch *resolve.NoMatchError
		if !errors.As(err, &noMatch) {
			t.Errorf("Expected a no-match error for folders below the scope depth, got %v", err)
		}
	})
}
