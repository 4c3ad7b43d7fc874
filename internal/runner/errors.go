package runner

import "fmt"

// MissingFileError reports a required SQL file that is absent from the file
// system. The sequence aborts at the missing file's position.
type MissingFileError struct {
	Label string
	Path  string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("required SQL file %q not found: %s", e.Label, e.Path)
}

// ExecError reports a file whose statement batch the database rejected. The
// file's transaction has been rolled back and the sequence aborted.
type ExecError struct {
	Label string
	Path  string
	Err   error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to execute %s (%s): %v", e.Path, e.Label, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }
