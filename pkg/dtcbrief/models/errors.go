package models

import (
	"fmt"
	"strings"
)

// EmptyInputError indicates that no weekly sheet could be selected.
type EmptyInputError struct {
	BookName string
	// Sheets lists every sheet name that was considered.
	Sheets []string
}

func (e *EmptyInputError) Error() string {
	if len(e.Sheets) == 0 {
		return fmt.Sprintf("workbook %q has no sheets", e.BookName)
	}
	return fmt.Sprintf("workbook %q has no weekly sheets (expected names like Wk6, Wk7); found: %s",
		e.BookName, strings.Join(e.Sheets, ", "))
}

// SchemaMismatchError indicates a sheet whose labels do not match the expected
// layout. It names the sheet and the offending labels.
type SchemaMismatchError struct {
	Sheet   string
	Missing []string
	// Extra lists labels that appear more than once and make the layout ambiguous.
	Extra []string
}

func (e *SchemaMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sheet %q does not match the expected layout", e.Sheet)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing %s", strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		fmt.Fprintf(&b, "; duplicated %s", strings.Join(e.Extra, ", "))
	}
	return b.String()
}

// RecordValidationError indicates a row that failed required-field checks.
type RecordValidationError struct {
	Sheet  string
	Cell   string
	Reason string
}

func (e *RecordValidationError) Error() string {
	return fmt.Sprintf("sheet %q %s: %s", e.Sheet, e.Cell, e.Reason)
}

// Rejection converts the error into its result form.
func (e *RecordValidationError) Rejection() Rejection {
	return Rejection{Sheet: e.Sheet, Cell: e.Cell, Reason: e.Reason}
}

// EmitError indicates a failure writing or sending the output artifact.
type EmitError struct {
	// Sink names the destination (file path or API endpoint).
	Sink string
	// Emitted is the number of tasks delivered before the failure.
	Emitted int
	Err     error
}

func (e *EmitError) Error() string {
	return fmt.Sprintf("emit to %s failed after %d task(s): %v", e.Sink, e.Emitted, e.Err)
}

func (e *EmitError) Unwrap() error {
	return e.Err
}
