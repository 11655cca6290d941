package models

import (
	"fmt"
	"strings"
)

// NoteFilterSet is a named bundle of include/exclude rules applied to documents.
// Every field is optional; an empty field places no constraint.
type NoteFilterSet struct {
	Name            string `json:"name" yaml:"name" mapstructure:"name"`
	IncludePathName string `json:"include_path_name,omitempty" yaml:"include_path_name,omitempty" mapstructure:"include_path_name"`
	ExcludePathName string `json:"exclude_path_name,omitempty" yaml:"exclude_path_name,omitempty" mapstructure:"exclude_path_name"`
	IncludeName     string `json:"include_name,omitempty" yaml:"include_name,omitempty" mapstructure:"include_name"`
	ExcludeName     string `json:"exclude_name,omitempty" yaml:"exclude_name,omitempty" mapstructure:"exclude_name"`
	IncludeTags     string `json:"include_tags,omitempty" yaml:"include_tags,omitempty" mapstructure:"include_tags"`
	ExcludeTags     string `json:"exclude_tags,omitempty" yaml:"exclude_tags,omitempty" mapstructure:"exclude_tags"`
}

// FolderFilterSet is a named bundle of include/exclude rules applied to directories.
type FolderFilterSet struct {
	Name            string `json:"name" yaml:"name" mapstructure:"name"`
	IncludePathName string `json:"include_path_name,omitempty" yaml:"include_path_name,omitempty" mapstructure:"include_path_name"`
	ExcludePathName string `json:"exclude_path_name,omitempty" yaml:"exclude_path_name,omitempty" mapstructure:"exclude_path_name"`
	IncludeName     string `json:"include_name,omitempty" yaml:"include_name,omitempty" mapstructure:"include_name"`
	ExcludeName     string `json:"exclude_name,omitempty" yaml:"exclude_name,omitempty" mapstructure:"exclude_name"`
}

// DefaultNoteFilterSet matches every document.
var DefaultNoteFilterSet = NoteFilterSet{Name: "all notes"}

// DefaultFolderFilterSet matches every directory.
var DefaultFolderFilterSet = FolderFilterSet{Name: "all folders"}

// IsEmpty reports whether the set places no constraint at all.
func (s NoteFilterSet) IsEmpty() bool {
	return s.IncludePathName == "" && s.ExcludePathName == "" &&
		s.IncludeName == "" && s.ExcludeName == "" &&
		s.IncludeTags == "" && s.ExcludeTags == ""
}

// IsEmpty reports whether the set places no constraint at all.
func (s FolderFilterSet) IsEmpty() bool {
	return s.IncludePathName == "" && s.ExcludePathName == "" &&
		s.IncludeName == "" && s.ExcludeName == ""
}

// ValidateNoteFilterSets checks that every set has a unique, non-blank name.
func ValidateNoteFilterSets(sets []NoteFilterSet) error {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return validateNames("note", names)
}

// ValidateFolderFilterSets checks that every set has a unique, non-blank name.
func ValidateFolderFilterSets(sets []FolderFilterSet) error {
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Name
	}
	return validateNames("folder", names)
}

func validateNames(kind string, names []string) error {
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s filter set #%d has a blank name", kind, i+1)
		}
		if seen[name] {
			return fmt.Errorf("duplicate %s filter set name %q", kind, name)
		}
		seen[name] = true
	}
	return nil
}
