package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-opener/pkg/match"
	"github.com/mattsolo1/grove-opener/pkg/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDecodesFilterSets(t *testing.T) {
	path := writeConfig(t, `
vault: /tmp/vault
picker: recursive
directory:
  root: projects
  depth: 1
  include_roots: true
note_filter_sets:
  - name: daily
    include_path_name: /^journal\//
    include_tags: "daily, log"
  - name: drafts
    exclude_name: archive
folder_filter_sets:
  - name: projects
    include_path_name: projects
`)

	settings, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/vault", settings.Vault)
	assert.Equal(t, models.PickerRecursive, settings.Picker)
	assert.Equal(t, models.DirectorySettings{Root: "projects", Depth: 1, IncludeRoots: true}, settings.Directory)

	require.Len(t, settings.NoteFilterSets, 2)
	assert.Equal(t, models.NoteFilterSet{
		Name:            "daily",
		IncludePathName: `/^journal\//`,
		IncludeTags:     "daily, log",
	}, settings.NoteFilterSets[0])
	assert.Equal(t, "archive", settings.NoteFilterSets[1].ExcludeName)

	require.Len(t, settings.FolderFilterSets, 1)
	assert.Equal(t, "projects", settings.FolderFilterSets[0].IncludePathName)
}

func TestLoadAppliesDefaults(t *testing.T) {
	settings, err := load(writeConfig(t, "note_filter_sets: []\n"))
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, cwd, settings.Vault)
	assert.Equal(t, models.PickerFlat, settings.Picker)
	assert.Equal(t, "/#~@%!", settings.RegexDelimiters)
	assert.Equal(t, models.DefaultSettings.Directory, settings.Directory)
	assert.Equal(t, "index.db", filepath.Base(settings.Index.Path))
	assert.False(t, settings.Index.Enabled)
	assert.Equal(t, []string{".md"}, settings.Scan.Extensions)
	assert.False(t, settings.Scan.IncludeHidden)
}

func TestScanSettings(t *testing.T) {
	settings, err := load(writeConfig(t, `
scan:
  extensions: [".md", ".markdown"]
  include_hidden: true
`))
	require.NoError(t, err)
	assert.Equal(t, models.ScanSettings{Extensions: []string{".md", ".markdown"}, IncludeHidden: true}, settings.Scan)

	t.Setenv("FNO_SCAN_EXTENSIONS", ".txt,.md")
	settings, err = load(writeConfig(t, "picker: flat\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{".txt", ".md"}, settings.Scan.Extensions)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("FNO_PICKER", "recursive")
	t.Setenv("FNO_DIRECTORY_DEPTH", "3")

	settings, err := load(writeConfig(t, "picker: flat\n"))
	require.NoError(t, err)

	assert.Equal(t, models.PickerRecursive, settings.Picker)
	assert.Equal(t, 3, settings.Directory.Depth)
}

func TestPickerNameIsCaseInsensitive(t *testing.T) {
	settings, err := load(writeConfig(t, "picker: \" Recursive \"\n"))
	require.NoError(t, err)

	assert.Equal(t, models.PickerRecursive, settings.Picker)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown picker",
			content: "picker: fuzzy\n",
			wantErr: `unknown picker "fuzzy"`,
		},
		{
			name: "duplicate note set",
			content: `note_filter_sets:
  - name: a
  - name: a
`,
			wantErr: `duplicate note filter set name "a"`,
		},
		{
			name: "blank folder set",
			content: `folder_filter_sets:
  - name: " "
`,
			wantErr: "folder filter set #1 has a blank name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandHome("~/notes")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes"), got)

	got, err = expandHome("/abs/notes")
	require.NoError(t, err)
	assert.Equal(t, "/abs/notes", got)
}

func TestLoadFromFlagAppliesDelimiters(t *testing.T) {
	t.Cleanup(func() { match.SetDelimiters(match.DefaultDelimiters) })

	path := writeConfig(t, "regex_delimiters: \"|\"\n")
	cmd := &cobra.Command{Use: "fno"}
	AddGlobalFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	settings, err := Load(cmd)
	require.NoError(t, err)

	assert.Equal(t, "|", settings.RegexDelimiters)
	assert.Equal(t, "|", match.Delimiters())
}
