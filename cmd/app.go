package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-opener/internal/tui/chooser"
	"github.com/mattsolo1/grove-opener/pkg/index"
	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/picker"
	"github.com/mattsolo1/grove-opener/pkg/resolve"
	"github.com/mattsolo1/grove-opener/pkg/tree"
	"github.com/mattsolo1/grove-opener/pkg/vault"
)

// App carries what every command needs once configuration is loaded.
type App struct {
	Settings *models.Settings
	Logger   *logrus.Logger
	Chooser  picker.Chooser

	// Cached makes Listing read the index instead of walking the vault.
	Cached bool
}

// NewApp builds the command environment. The chooser only opens when stdin
// and stdout are terminals.
func NewApp(settings *models.Settings, logger *logrus.Logger) *App {
	return &App{
		Settings: settings,
		Logger:   logger,
		Chooser:  picker.ChooserFunc(terminalChoose),
	}
}

func terminalChoose(ctx context.Context, prompt string, options []picker.Option) (int, error) {
	if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
		return -1, fmt.Errorf("%d candidates need an interactive terminal to choose from", len(options))
	}
	return chooser.New().Choose(ctx, prompt, options)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Listing returns the vault tree, from the index when Cached is set.
func (a *App) Listing(ctx context.Context) (*tree.Tree, error) {
	if a.Cached {
		t, err := a.loadIndexed(ctx)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, index.ErrNotIndexed) {
			return nil, err
		}
		a.Logger.WithField("vault", a.Settings.Vault).Warn("vault not indexed yet, scanning instead")
	}

	t, err := a.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if a.Settings.Index.Enabled {
		if err := a.storeIndex(ctx, t); err != nil {
			a.Logger.WithError(err).Warn("failed to refresh index")
		}
	}
	return t, nil
}

// Scan walks the vault with the configured scan settings.
func (a *App) Scan(ctx context.Context) (*tree.Tree, error) {
	opts := []vault.ScanOption{
		vault.WithLogger(a.Logger),
		vault.WithExtensions(a.Settings.Scan.Extensions...),
	}
	if a.Settings.Scan.IncludeHidden {
		opts = append(opts, vault.WithHidden())
	}
	return vault.Scan(ctx, a.Settings.Vault, opts...)
}

func (a *App) loadIndexed(ctx context.Context) (*tree.Tree, error) {
	idx, err := index.Open(a.Settings.Index.Path)
	if err != nil {
		return nil, err
	}
	defer idx.Close()
	return idx.Load(ctx, a.Settings.Vault)
}

func (a *App) storeIndex(ctx context.Context, t *tree.Tree) error {
	idx, err := index.Open(a.Settings.Index.Path)
	if err != nil {
		return err
	}
	defer idx.Close()
	return idx.Store(ctx, a.Settings.Vault, t)
}

// Picker builds the configured picker.
func (a *App) Picker() (picker.Picker, error) {
	return picker.New(a.Settings.Picker, a.Chooser)
}

// Resolver builds a resolver over listing limited to scope.
func (a *App) Resolver(listing resolve.Listing, scope resolve.DirectoryScope) (*resolve.Resolver, error) {
	p, err := a.Picker()
	if err != nil {
		return nil, err
	}
	return resolve.New(listing, p,
		resolve.WithLogger(a.Logger),
		resolve.WithNoteFilterSets(a.Settings.NoteFilterSets...),
		resolve.WithFolderFilterSets(a.Settings.FolderFilterSets...),
		resolve.WithDirectoryScope(scope),
	), nil
}

// Scope returns the configured directory scope.
func (a *App) Scope() resolve.DirectoryScope {
	d := a.Settings.Directory
	return resolve.DirectoryScope{Root: d.Root, Depth: d.Depth, IncludeRoots: d.IncludeRoots}
}

// AbsPath maps a vault-relative entry back to the filesystem.
func (a *App) AbsPath(e *tree.Entry) string {
	return filepath.Join(a.Settings.Vault, filepath.FromSlash(e.Path))
}

// openInEditor opens a file in $EDITOR
func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim" // fallback
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}
