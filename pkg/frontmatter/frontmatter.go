package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n?---[ \t]*(?:\r?\n|$)(.*)`)

// Frontmatter holds the metadata of a document that filter sets can use.
type Frontmatter struct {
	Title   string `yaml:"title"`
	Aliases List   `yaml:"aliases"`
	Tags    List   `yaml:"tags"`
	Tag     List   `yaml:"tag"` // singular spelling accepted by most vault tools
}

// List is a YAML string list that also accepts a single comma or space
// separated scalar, e.g. `tags: project/alpha, status/done`.
type List []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *List) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = List{}
			return nil
		}
		*l = splitScalar(node.Value)
		return nil
	case yaml.SequenceNode:
		items := make(List, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: list items must be strings", item.Line)
			}
			if v := strings.TrimSpace(item.Value); v != "" {
				items = append(items, v)
			}
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list", node.Line)
	}
}

func splitScalar(value string) List {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return append(List{}, fields...)
}

// Parse extracts frontmatter from content and returns the parsed data and body
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		// No frontmatter found
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	// Ensure lists are never nil
	if fm.Aliases == nil {
		fm.Aliases = List{}
	}
	if fm.Tags == nil {
		fm.Tags = List{}
	}
	if fm.Tag == nil {
		fm.Tag = List{}
	}

	return &fm, matches[2], nil
}

// AllTags returns the tags of both spellings without a leading '#', deduplicated.
func (fm *Frontmatter) AllTags() []string {
	if fm == nil {
		return []string{}
	}
	return MergeTags(trimHashes(fm.Tags), trimHashes(fm.Tag))
}

func trimHashes(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.TrimPrefix(t, "#")
	}
	return out
}

// MergeTags combines multiple tag sources and removes duplicates
func MergeTags(sources ...[]string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, tags := range sources {
		for _, tag := range tags {
			if tag != "" && !seen[tag] {
				seen[tag] = true
				result = append(result, tag)
			}
		}
	}

	return result
}
