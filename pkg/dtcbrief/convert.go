package dtcbrief

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/parser"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/transform"
	"github.com/xuri/excelize/v2"
)

// Emitter delivers a conversion result to its destination.
type Emitter interface {
	Emit(ctx context.Context, result *models.ConversionResult) error
}

// OpenWorkbook loads an xlsx file into memory.
func OpenWorkbook(path string, includeLinks bool) (*models.Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()
	return parser.LoadWorkbook(f, filepath.Base(path), includeLinks)
}

// ReadWorkbook loads an xlsx document from r, e.g. an uploaded file.
func ReadWorkbook(r io.Reader, bookName string, includeLinks bool) (*models.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()
	return parser.LoadWorkbook(f, bookName, includeLinks)
}

// Convert converts the workbook at path.
func Convert(path string, opts Options) (*models.ConversionResult, error) {
	wb, err := OpenWorkbook(path, opts.ShouldIncludeLinks())
	if err != nil {
		return nil, err
	}
	return ConvertWorkbook(wb, opts)
}

// ConvertReader converts an xlsx document read from r.
func ConvertReader(r io.Reader, bookName string, opts Options) (*models.ConversionResult, error) {
	wb, err := ReadWorkbook(r, bookName, opts.ShouldIncludeLinks())
	if err != nil {
		return nil, err
	}
	return ConvertWorkbook(wb, opts)
}

// ConvertWorkbook runs the pipeline over an in-memory workbook: locate weekly
// sheets, extract briefs, transform them into tasks.
//
// A workbook without weekly sheets fails with *EmptyInputError. A sheet with
// the wrong layout is skipped and reported in SheetFailures; in that case the
// result for the remaining sheets is returned together with the joined
// *SchemaMismatchError values. Rows failing validation never produce an error;
// they are listed in Rejections.
func ConvertWorkbook(wb *models.Workbook, opts Options) (*models.ConversionResult, error) {
	brand, err := NormalizeBrand(opts.Brand)
	if err != nil {
		return nil, err
	}

	weekSheets, err := parser.LocateWeekSheets(wb, opts.Weeks)
	if err != nil {
		return nil, err
	}

	result := &models.ConversionResult{Brand: brand, BookName: wb.BookName}
	tr := transform.New(brand, opts.Assignee)
	extractOpts := parser.ExtractOptions{ReferenceYear: opts.Year()}

	var sheetErrs []error
	for _, ws := range weekSheets {
		records, err := parser.ExtractBriefs(ws, extractOpts)
		if err != nil {
			sheetErrs = append(sheetErrs, err)
			result.SheetFailures = append(result.SheetFailures, models.SheetFailure{Sheet: ws.Name(), Message: err.Error()})
			log.Warn().Err(err).Str("sheet", ws.Name()).Msg("Skipping sheet")
			continue
		}
		result.Stats.SheetsProcessed++
		collect(result, tr, records)
	}

	if opts.IncludeLaunches {
		if err := convertLaunches(wb, result, tr); err != nil {
			sheetErrs = append(sheetErrs, err)
		}
	}

	result.Stats.TotalTasks = len(result.Tasks)
	log.Info().
		Str("book", wb.BookName).
		Str("brand", brand).
		Int("tasks", result.Stats.TotalTasks).
		Int("rejections", len(result.Rejections)).
		Int("sheets", result.Stats.SheetsProcessed).
		Msg("Conversion finished")

	return result, errors.Join(sheetErrs...)
}

func convertLaunches(wb *models.Workbook, result *models.ConversionResult, tr *transform.Transformer) error {
	sheet, ok := wb.Sheet(parser.LaunchSheetName)
	if !ok {
		log.Warn().Str("sheet", parser.LaunchSheetName).Msg("Sheet not found")
		return nil
	}
	records, err := parser.ExtractLaunches(sheet)
	if err != nil {
		result.SheetFailures = append(result.SheetFailures, models.SheetFailure{Sheet: sheet.Name, Message: err.Error()})
		log.Warn().Err(err).Str("sheet", sheet.Name).Msg("Skipping sheet")
		return err
	}
	result.Stats.SheetsProcessed++
	collect(result, tr, records)
	return nil
}

// collect transforms records into result, recording rejections.
func collect(result *models.ConversionResult, tr *transform.Transformer, records []models.RawRecord) {
	for _, rec := range records {
		tasks, err := tr.Transform(rec)
		if err != nil {
			var invalid *models.RecordValidationError
			if errors.As(err, &invalid) {
				result.Rejections = append(result.Rejections, invalid.Rejection())
				log.Debug().Str("sheet", invalid.Sheet).Str("cell", invalid.Cell).Str("reason", invalid.Reason).Msg("Rejected record")
				continue
			}
			result.Rejections = append(result.Rejections, models.Rejection{Sheet: rec.Sheet, Cell: rec.Cell, Reason: err.Error()})
			continue
		}
		for _, task := range tasks {
			switch task.Kind {
			case models.KindEmail:
				result.Stats.EmailBriefs++
			case models.KindSMS:
				result.Stats.SMSBriefs++
			case models.KindLaunch:
				result.Stats.ProductLaunches++
			}
		}
		result.Tasks = append(result.Tasks, tasks...)
	}
}

// Run converts the workbook at path and hands the result to emitter.
// Sheet-level errors do not stop emission of the remaining tasks; they are
// returned joined with any emit error.
func Run(ctx context.Context, path string, opts Options, emitter Emitter) (*models.ConversionResult, error) {
	result, convErr := Convert(path, opts)
	if result == nil {
		return nil, convErr
	}
	if err := emitter.Emit(ctx, result); err != nil {
		return result, errors.Join(convErr, err)
	}
	return result, convErr
}
