// Package runner applies an ordered list of SQL files to an open database
// connection. Each file is one transaction: committed on success, rolled back
// on the first error, after which no later file is touched. Ordering matters
// because the role files define functions against tables the schema file
// creates.
package runner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File describes one SQL file in the bootstrap sequence.
type File struct {
	Label    string
	Path     string
	Required bool
}

// Status is the per-file outcome.
type Status int

const (
	// Applied means the file's batch executed and committed.
	Applied Status = iota
	// RolledBack means the database rejected the batch and the file's
	// transaction was rolled back.
	RolledBack
	// Missing means the file was absent from the file system.
	Missing
)

func (s Status) String() string {
	switch s {
	case Applied:
		return "applied"
	case RolledBack:
		return "rolled back"
	case Missing:
		return "missing"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result records the outcome for a single file.
type Result struct {
	File   File
	Status Status
	Err    error
}

// Manifest returns the bootstrap sequence for the tanker delivery database.
// The schema file must run first; the customer, supplier, and driver function
// files depend on its tables and types. With schemaOnly set, only the schema
// file is returned.
func Manifest(dir string, schemaOnly bool) []File {
	files := []File{
		{Label: "schema", Path: filepath.Join(dir, "schema.sql"), Required: true},
	}
	if schemaOnly {
		return files
	}
	return append(files,
		File{Label: "customer", Path: filepath.Join(dir, "customer.sql"), Required: true},
		File{Label: "supplier", Path: filepath.Join(dir, "supplier.sql"), Required: true},
		File{Label: "driver", Path: filepath.Join(dir, "driver.sql"), Required: true},
	)
}

// RunAll executes the files in declared order. It stops at the first failure:
// earlier commits stay durable, the failing file's transaction is rolled back,
// and later files are never read or executed. The returned results cover every
// file that was reached, in order.
func RunAll(ctx context.Context, db *sql.DB, files []File) ([]Result, error) {
	results := make([]Result, 0, len(files))

	for _, file := range files {
		result, err := runOne(ctx, db, file)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

func runOne(ctx context.Context, db *sql.DB, file File) (Result, error) {
	if _, err := os.Stat(file.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) && file.Required {
			missing := &MissingFileError{Label: file.Label, Path: file.Path}
			return Result{File: file, Status: Missing, Err: missing}, missing
		}
		if errors.Is(err, os.ErrNotExist) {
			return Result{File: file, Status: Missing}, nil
		}
		wrapped := &ExecError{Label: file.Label, Path: file.Path, Err: err}
		return Result{File: file, Status: Missing, Err: wrapped}, wrapped
	}

	contents, err := os.ReadFile(file.Path)
	if err != nil {
		wrapped := &ExecError{Label: file.Label, Path: file.Path, Err: err}
		return Result{File: file, Status: RolledBack, Err: wrapped}, wrapped
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		wrapped := &ExecError{Label: file.Label, Path: file.Path, Err: err}
		return Result{File: file, Status: RolledBack, Err: wrapped}, wrapped
	}

	// The whole file is one batch: all of it commits or none of it does.
	if _, err := tx.ExecContext(ctx, string(contents)); err != nil {
		_ = tx.Rollback()
		wrapped := &ExecError{Label: file.Label, Path: file.Path, Err: err}
		return Result{File: file, Status: RolledBack, Err: wrapped}, wrapped
	}

	if err := tx.Commit(); err != nil {
		wrapped := &ExecError{Label: file.Label, Path: file.Path, Err: err}
		return Result{File: file, Status: RolledBack, Err: wrapped}, wrapped
	}

	return Result{File: file, Status: Applied}, nil
}
