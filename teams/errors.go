package teams

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTeamNotFound is returned when the referenced team id does not exist.
	ErrTeamNotFound = errors.New("team not found")

	// ErrInvalidStatus is returned when a status update names a value outside
	// pending/approved/rejected.
	ErrInvalidStatus = errors.New("invalid team status")
)

// ValidationErrors maps a field name to the message of the first rule it
// violated. A non-empty map means the submission was rejected with no side
// effects.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// StorageError wraps a file-storage failure. During registration it aborts
// the whole operation; during delete it is logged and swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("document storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
