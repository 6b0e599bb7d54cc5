// Package logger builds the zap loggers used by glgen.
//
// Library packages take a *zap.SugaredLogger and never construct one
// themselves; a nil logger is replaced by [Nop].
package logger

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/refaktor/glgen/textutils"
)

// Verbosity levels, counted from repeated -v flags.
const (
	VerbosityQuiet = 0 // warnings and errors
	VerbosityInfo  = 1 // + per-module progress
	VerbosityDebug = 2 // + decisions (skipped writes, cache hits)
)

// Structured field names.
const (
	FieldModule = "module"
	FieldPath   = "path"
	FieldURL    = "url"
	FieldError  = "error"
)

// VerbosityToLevel maps a -v count to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// New returns a console logger writing lines like
//
//	glgen WARN: unable to fetch specification	{"module": "GL_ARB_foo"}
//
// to w. Multi-line messages start on their own line and are indented.
func New(w io.Writer, prefix string, verbosity int) *zap.SugaredLogger {
	cfg := zapcore.EncoderConfig{
		NameKey:          "logger",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      encodeLevel,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
	core := zapcore.NewCore(
		indentEncoder{zapcore.NewConsoleEncoder(cfg)},
		zapcore.AddSync(w),
		VerbosityToLevel(verbosity),
	)
	l := zap.New(core)
	if prefix != "" {
		l = l.Named(prefix)
	}
	return l.Sugar()
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// OrNop returns l, or a no-op logger if l is nil.
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return Nop()
	}
	return l
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(l.CapitalString() + ":")
}

type indentEncoder struct {
	zapcore.Encoder
}

func (e indentEncoder) Clone() zapcore.Encoder {
	return indentEncoder{e.Encoder.Clone()}
}

func (e indentEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	if strings.Contains(ent.Message, "\n") {
		ent.Message = "\n" + textutils.IndentString(strings.TrimRight(ent.Message, "\n"), "  ", 1)
	}
	return e.Encoder.EncodeEntry(ent, fields)
}
