package output

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
)

// FileEmitter writes the artifact to a file. The file is either written in
// full or left untouched.
type FileEmitter struct {
	Path   string
	Format Format
}

// NewFileEmitter returns an emitter for path in the given format.
func NewFileEmitter(path string, format Format) *FileEmitter {
	return &FileEmitter{Path: path, Format: format}
}

// Emit encodes result and writes it to e.Path. Failures are returned as
// *models.EmitError.
func (e *FileEmitter) Emit(ctx context.Context, result *models.ConversionResult) error {
	if err := ctx.Err(); err != nil {
		return &models.EmitError{Sink: e.Path, Err: err}
	}
	data, err := Bytes(result, e.Format)
	if err != nil {
		return &models.EmitError{Sink: e.Path, Err: err}
	}
	if err := writeFileAtomic(e.Path, data, 0o644); err != nil {
		return &models.EmitError{Sink: e.Path, Err: err}
	}
	log.Info().
		Str("path", e.Path).
		Str("format", string(e.Format)).
		Int("tasks", len(result.Tasks)).
		Msg("Wrote tasks")
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never observe a truncated artifact.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
