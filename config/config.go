package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"
)

// Spec configures retrieval of extension specification texts.
type Spec struct {
	// Download missing specifications (cached next to the output).
	Fetch bool `toml:"fetch"`
	// Base URL extension texts live under, e.g. <root-url>ARB/foo.txt.
	RootURL string `toml:"root-url"`
	// URL overrides keyed by "<OWNER>/<name>", merged over the built-in table.
	Exceptions map[string]string `toml:"exceptions"`
}

type Config struct {
	Imports []string `toml:"imports"`

	// Path of the registry XML (Khronos gl.xml format).
	Registry string `toml:"registry"`
	// APIs to generate for, as named in the registry ("gl", "gles2", ...).
	APIs []string `toml:"apis"`

	OutputRoot           string `toml:"output-root"`
	RawOutputRoot        string `toml:"raw-output-root"`
	FileExtension        string `toml:"file-extension"`
	PackageMarker        string `toml:"package-marker"`
	PackageMarkerContent string `toml:"package-marker-content"`

	// Include the "Overview" block of the specification in the
	// generated module docstring. Unset means true.
	IncludeOverviews *bool `toml:"include-overviews"`
	// Use the owner exactly as written in the registry (leading digits
	// kept) for output directories.
	RawOwnerPaths bool `toml:"raw-owner-paths"`

	// Number of modules generated concurrently.
	Jobs int `toml:"jobs"`
	// Continue with remaining modules when one fails.
	KeepGoing bool `toml:"keep-going"`
	// Optional file listing modules under [enabled]/[disabled].
	ModuleList string `toml:"module-list"`

	Spec Spec `toml:"spec"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Registry:             "gl.xml",
		APIs:                 []string{"gl"},
		OutputRoot:           "OpenGL",
		RawOutputRoot:        filepath.Join("OpenGL", "raw"),
		FileExtension:        ".py",
		PackageMarker:        "__init__.py",
		PackageMarkerContent: `"""OpenGL Extensions"""`,
		IncludeOverviews:     ptr(true),
		Jobs:                 1,
		Spec: Spec{
			RootURL: "http://www.opengl.org/registry/specs/",
		},
	}
}

type Error struct {
	filePath string
	err      error  // short, single-line error
	str      string // full, multi-line error string, or err string, if none
}

// Error returns a short error message.
func (e *Error) Error() string {
	return e.filePath + ": " + e.err.Error()
}

// String returns the full multi-line error string.
func (e *Error) String() string {
	if e.str != "" {
		return "Error in file " + strconv.Quote(e.filePath) + ":\n" + e.str
	} else {
		return e.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.err
}

// Load reads the config file at path on top of [Default].
// Files listed in imports are loaded recursively and merged in;
// values set in the importing file win, slices are appended.
func Load(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(c, Default(), mergo.WithoutDereference); err != nil {
		return nil, &Error{filePath: path, err: err}
	}
	return c, nil
}

func load(path string) (_ *Config, err error) {
	defer func() {
		if err != nil {
			if cErr := (&Error{}); errors.As(err, &cErr) {
				// already attributed to an imported file
			} else if tErr := (&toml.DecodeError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else if tErr := (&toml.StrictMissingError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else {
				err = &Error{filePath: path, err: err}
			}
		}
	}()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := &Config{}
	err = toml.NewDecoder(bytes.NewReader(file)).
		DisallowUnknownFields().
		Decode(c)
	if err != nil {
		return nil, err
	}

	var importedCs []*Config // collect imported files first so their imports don't leak into our file's imports
	for _, imp := range c.Imports {
		if !filepath.IsAbs(imp) {
			imp = filepath.Join(filepath.Dir(path), imp)
		}
		newC, err := load(imp)
		if err != nil {
			return nil, err
		}
		importedCs = append(importedCs, newC)
	}
	for _, newC := range importedCs {
		if err := mergo.Merge(c, newC, mergo.WithAppendSlice, mergo.WithoutDereference); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Overviews reports whether overview blocks are included.
func (c *Config) Overviews() bool {
	return c.IncludeOverviews == nil || *c.IncludeOverviews
}

func ptr[T any](v T) *T { return &v }

// Save writes c to path as TOML.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0666)
}
