// Package merge writes generated modules without clobbering hand-written
// code or touching files whose content did not change.
//
// A friendly module consists of a generated header, the end sentinel
// line and a hand-written suffix. Regeneration replaces the header and
// keeps the suffix.
package merge

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"github.com/refaktor/glgen/logger"
)

const (
	// SentinelDoNotEdit is the last line of every generated header.
	SentinelDoNotEdit = `### DO NOT EDIT above the line "END AUTOGENERATED SECTION" below!`
	// SentinelEnd separates the generated header from hand-written code.
	SentinelEnd = `### END AUTOGENERATED SECTION`
)

// readPrior returns the content of path. A missing file, or one we
// are not permitted to read, has no prior content. Other read errors
// are returned.
func readPrior(path string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return "", nil
	default:
		return "", errors.Wrapf(err, "read %v", path)
	}
}

// ShouldReplace reports whether the friendly module at path may be
// regenerated: it is missing, empty or not readable by us, or it
// contains the end sentinel line. Files with content but no sentinel
// are fully hand-written and left alone. Read errors other than
// fs.ErrNotExist and fs.ErrPermission are returned.
func ShouldReplace(path string) (bool, error) {
	prior, err := readPrior(path)
	if err != nil {
		return false, err
	}
	return shouldReplace(prior), nil
}

func shouldReplace(prior string) bool {
	if prior == "" {
		return true
	}
	for _, line := range strings.Split(prior, "\n") {
		if strings.TrimSpace(line) == SentinelEnd {
			return true
		}
	}
	return false
}

// SplitPreserved splits content at the last line consisting of the end
// sentinel. header is everything before that line, suffix everything
// after the sentinel text. found is false if there is no such line.
func SplitPreserved(content string) (header, suffix string, found bool) {
	lineStart := -1
	for start := 0; start <= len(content); {
		end := strings.IndexByte(content[start:], '\n')
		if end == -1 {
			end = len(content)
		} else {
			end += start
		}
		if strings.TrimSpace(content[start:end]) == SentinelEnd {
			lineStart = start
		}
		start = end + 1
	}
	if lineStart == -1 {
		return "", "", false
	}
	tok := lineStart + strings.Index(content[lineStart:], SentinelEnd)
	return content[:lineStart], content[tok+len(SentinelEnd):], true
}

// Writer writes generated files. With DryRun set it only reports
// whether a write would happen.
type Writer struct {
	DryRun bool
	Log    *zap.SugaredLogger

	// PackageMarker is the file name created in every output directory,
	// e.g. "__init__.py". Empty disables markers.
	PackageMarker        string
	PackageMarkerContent string
}

func (w *Writer) log() *zap.SugaredLogger {
	return logger.OrNop(w.Log)
}

// WriteRaw writes content to path unless the file already holds the
// same text, ignoring surrounding whitespace.
func (w *Writer) WriteRaw(path, content string) (bool, error) {
	prior, err := readPrior(path)
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(prior) == strings.TrimSpace(content) {
		w.log().Debugw("raw module unchanged", logger.FieldPath, path)
		return false, nil
	}
	if w.DryRun {
		return true, nil
	}
	if err := writeFile(path, content); err != nil {
		return false, errors.Wrapf(err, "write raw module %v", path)
	}
	return true, nil
}

// WriteFriendly regenerates the header of the friendly module at path,
// keeping everything after the last end sentinel. header must end with
// the [SentinelDoNotEdit] line. It reports whether the file was
// written. Write failures are logged and reported as not written; an
// existing file that cannot be read for other reasons than
// fs.ErrNotExist or fs.ErrPermission is left alone and the error
// returned.
func (w *Writer) WriteFriendly(path, header string) (bool, error) {
	prior, err := readPrior(path)
	if err != nil {
		return false, err
	}
	if !shouldReplace(prior) {
		w.log().Debugw("friendly module is hand-written, skipping", logger.FieldPath, path)
		return false, nil
	}

	suffix := ""
	if priorHeader, rest, found := SplitPreserved(prior); found {
		if strings.TrimSpace(priorHeader) == strings.TrimSpace(header) {
			w.log().Debugw("friendly module unchanged", logger.FieldPath, path)
			return false, nil
		}
		suffix = rest
	}
	if w.DryRun {
		return true, nil
	}
	if err := writeFile(path, header+SentinelEnd+suffix); err != nil {
		w.log().Warnw("unable to write friendly module", logger.FieldPath, path, logger.FieldError, err)
		return false, nil
	}
	return true, nil
}

func writeFile(path, content string) error {
	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return err
	}
	if errors.Is(statErr, os.ErrNotExist) {
		// new files are created with the temp file's private mode
		return os.Chmod(path, 0644)
	}
	return nil
}

// EnsurePackageDir creates dir and a package marker in every directory
// from just below root down to dir. Existing directories and markers
// are left untouched.
func (w *Writer) EnsurePackageDir(root, dir string) error {
	if w.DryRun {
		return nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		w.log().Infow("creating target directory", logger.FieldPath, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "create target directory")
	}
	if w.PackageMarker == "" {
		return nil
	}

	dirs := []string{dir}
	if rel, err := filepath.Rel(root, dir); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		dirs = dirs[:0]
		cur := root
		for _, elem := range strings.Split(rel, string(filepath.Separator)) {
			cur = filepath.Join(cur, elem)
			dirs = append(dirs, cur)
		}
	}
	for _, d := range dirs {
		if err := w.createMarker(filepath.Join(d, w.PackageMarker)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) createMarker(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil
		}
		return errors.Wrap(err, "create package marker")
	}
	_, err = f.WriteString(w.PackageMarkerContent)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	return errors.Wrap(err, "write package marker")
}
