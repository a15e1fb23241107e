package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"quorum/internal/config"
	"quorum/internal/fileutil"
	"quorum/internal/logging"
)

// LockFileName is created in the output directory while artifacts are written.
const LockFileName = ".quorum.lock"

// ErrOutputLocked is returned when another run holds the output directory.
var ErrOutputLocked = errors.New("output directory is locked by another run")

// Writer persists report artifacts into an output directory.
type Writer struct {
	Dir      string
	Basename string
	Cells    CellValues
	wants    func(format string) bool
	logger   *slog.Logger
}

// NewWriter configures a Writer from cfg.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	return &Writer{
		Dir:      cfg.Paths.OutputDir,
		Basename: cfg.Output.Basename,
		wants:    cfg.WantsFormat,
		Cells:    CellValues{Present: cfg.Attendance.StatusPresent, Absent: cfg.Attendance.StatusAbsent},
		logger:   logging.NewComponentLogger(logger, "report"),
	}
}

type artifact struct {
	format string
	suffix string
	render func(io.Writer, Data) error
}

func (w *Writer) artifacts() []artifact {
	return []artifact{
		{config.FormatCSV, "-presence.csv", func(out io.Writer, d Data) error {
			return WriteAttendanceCSV(out, d.Matrix, w.Cells)
		}},
		{config.FormatMarkdown, "-presence.md", func(out io.Writer, d Data) error {
			_, err := io.WriteString(out, RenderAttendanceMarkdown(d.Matrix, w.Cells)+"\n"+FormatRecap(d.Matrix))
			return err
		}},
		{config.FormatMarkdown, "-deliberations.md", func(out io.Writer, d Data) error {
			_, err := io.WriteString(out, FormatDeliberations(d.Deliberations, d.Years))
			return err
		}},
		{config.FormatJSON, "-summary.json", WriteSummaryJSON},
	}
}

// Path returns where the artifact with the given suffix is written.
func (w *Writer) Path(suffix string) string {
	return filepath.Join(w.Dir, w.Basename+suffix)
}

// WriteAll renders every enabled artifact and writes it atomically. Files
// whose content would not change are left untouched. It returns the paths of
// all enabled artifacts.
func (w *Writer) WriteAll(ctx context.Context, d Data) ([]string, error) {
	if d.Matrix == nil || d.Deliberations == nil {
		return nil, errors.New("report data is incomplete")
	}
	logger := logging.WithContext(ctx, w.logger)

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(w.Dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, ErrOutputLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(logger, "failed to release output lock", "output_unlock_failed",
				logging.String(logging.FieldErrorHint, "remove the lock file if no other run is active"),
				logging.String(logging.FieldImpact, "next run may report the output directory as locked"),
				logging.Error(err),
			)
		}
	}()

	var written []string
	for _, a := range w.artifacts() {
		if !w.wants(a.format) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}
		var buf bytes.Buffer
		if err := a.render(&buf, d); err != nil {
			return written, fmt.Errorf("render %s: %w", a.suffix, err)
		}
		path := w.Path(a.suffix)
		same, err := fileutil.SameContent(path, buf.Bytes())
		if err != nil {
			return written, fmt.Errorf("compare %s: %w", path, err)
		}
		if same {
			logger.Debug("artifact unchanged", logging.String("path", path))
		} else {
			if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
				return written, fmt.Errorf("write %s: %w", path, err)
			}
			logger.Info("artifact written", logging.String("path", path), logging.Int("bytes", buf.Len()))
		}
		written = append(written, path)
	}
	return written, nil
}
