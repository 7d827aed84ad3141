package dtcbrief

import (
	"errors"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrUnknownBrand indicates a brand code outside KnownBrands.
var ErrUnknownBrand = errors.New("unknown brand")

// ErrUnknownWeek indicates a requested week sheet that the workbook lacks.
var ErrUnknownWeek = parser.ErrUnknownWeek

// Error kinds raised by the pipeline. They are defined in models so every
// stage can return them.
type (
	// EmptyInputError: no weekly sheet matched.
	EmptyInputError = models.EmptyInputError
	// SchemaMismatchError: a sheet lacks required labels or columns.
	SchemaMismatchError = models.SchemaMismatchError
	// RecordValidationError: a row failed required-field checks.
	RecordValidationError = models.RecordValidationError
	// EmitError: the output artifact could not be written or sent.
	EmitError = models.EmitError
)

// IsStructural reports whether err stops conversion of a sheet or of the
// whole workbook, as opposed to a per-row validation problem.
func IsStructural(err error) bool {
	var empty *EmptyInputError
	var schema *SchemaMismatchError
	return errors.As(err, &empty) || errors.As(err, &schema) ||
		errors.Is(err, ErrUnknownWeek) || errors.Is(err, ErrInvalidFormat)
}
