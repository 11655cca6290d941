package resolve

import (
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// ErrCancelled is returned when the user dismisses an interactive pick.
// It is not a failure: callers should stop quietly.
var ErrCancelled = errors.New("selection cancelled")

// IsCancelled reports whether err means the user abandoned the pick.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// FilterSetNotFoundError is returned when a filter set is requested by a name
// that is not in the configured collection.
type FilterSetNotFoundError struct {
	Kind tree.Kind
	Name string
}

func (e *FilterSetNotFoundError) Error() string {
	return fmt.Sprintf("no %s filter set named %q", kindLabel(e.Kind), e.Name)
}

// NoMatchError is returned when a filter set selects nothing.
type NoMatchError struct {
	Kind      tree.Kind
	FilterSet string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no %ss match filter set %q", kindLabel(e.Kind), e.FilterSet)
}

// MissingRootError is returned when folder resolution is scoped to a root
// that does not exist or is not a directory.
type MissingRootError struct {
	Root string
}

func (e *MissingRootError) Error() string {
	return fmt.Sprintf("root directory %q not found", e.Root)
}

func kindLabel(k tree.Kind) string {
	if k == tree.Directory {
		return "folder"
	}
	return "note"
}
