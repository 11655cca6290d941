package picker

import (
	"strings"

	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// Label builds the short text shown for an entry in a flat list: the second
// path segment followed by the name of the directory holding the entry, so
// "areas/health/log/2024.md" becomes "health/ log". Shallow paths fall back
// to the parent directory name, then to the entry's own name.
func Label(e *tree.Entry) string {
	segments := e.Segments()
	switch {
	case len(segments) >= 3:
		return segments[1] + "/ " + trimMarkdown(segments[len(segments)-2])
	case len(segments) == 2:
		return trimMarkdown(segments[0])
	default:
		return e.String()
	}
}

func trimMarkdown(name string) string {
	if len(name) > 3 && strings.EqualFold(name[len(name)-3:], ".md") {
		return name[:len(name)-3]
	}
	return name
}

func options(entries []*tree.Entry) []Option {
	opts := make([]Option, len(entries))
	for i, e := range entries {
		opts[i] = Option{Label: Label(e), Detail: e.String()}
	}
	return opts
}
