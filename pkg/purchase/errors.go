package purchase

import "fmt"

// FileAccessError is returned when a source or destination file cannot be
// opened, read, created or written.
type FileAccessError struct {
	Op   string // "open", "read", "create", "write", "close"
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
