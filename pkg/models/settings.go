package models

// PickerMode selects the interactive disambiguation strategy.
type PickerMode string

const (
	// PickerFlat presents every candidate in a single searchable list.
	PickerFlat PickerMode = "flat"

	// PickerRecursive drills down through the directory levels that separate candidates.
	PickerRecursive PickerMode = "recursive"
)

// DirectorySettings describe which directories folder resolution considers.
type DirectorySettings struct {
	Root         string `yaml:"root" mapstructure:"root"`
	Depth        int    `yaml:"depth" mapstructure:"depth"`
	IncludeRoots bool   `yaml:"include_roots" mapstructure:"include_roots"`
}

// Settings is the user-editable configuration of the opener.
type Settings struct {
	Vault            string            `yaml:"vault" mapstructure:"vault"`
	Picker           PickerMode        `yaml:"picker" mapstructure:"picker"`
	RegexDelimiters  string            `yaml:"regex_delimiters" mapstructure:"regex_delimiters"`
	Directory        DirectorySettings `yaml:"directory" mapstructure:"directory"`
	NoteFilterSets   []NoteFilterSet   `yaml:"note_filter_sets" mapstructure:"note_filter_sets"`
	FolderFilterSets []FolderFilterSet `yaml:"folder_filter_sets" mapstructure:"folder_filter_sets"`
	Index            IndexSettings     `yaml:"index" mapstructure:"index"`
	Scan             ScanSettings      `yaml:"scan" mapstructure:"scan"`
}

// ScanSettings control which files of the vault are listed.
type ScanSettings struct {
	Extensions    []string `yaml:"extensions" mapstructure:"extensions"`
	IncludeHidden bool     `yaml:"include_hidden" mapstructure:"include_hidden"`
}

// IndexSettings control the on-disk listing cache.
type IndexSettings struct {
	Path    string `yaml:"path" mapstructure:"path"`
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
}

// DefaultSettings provides sensible defaults
var DefaultSettings = Settings{
	Picker:          PickerFlat,
	RegexDelimiters: "/#~@%!",
	Directory: DirectorySettings{
		Root:  "/",
		Depth: -1, // every level below the root
	},
	Scan: ScanSettings{
		Extensions: []string{".md"},
	},
}
