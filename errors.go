package glgen

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// ModuleErrors collects the failures of a keep-going run, keyed by
// registry module name, with the API appended for extensions.
type ModuleErrors struct {
	errors map[string]error
}

// Returns nil if errs is empty.
// Underlying type is always [*ModuleErrors].
func newModuleErrors(errs map[string]error) error {
	if len(errs) == 0 {
		return nil
	}
	return &ModuleErrors{errors: maps.Clone(errs)}
}

func (e *ModuleErrors) sortedNames() []string {
	return slices.Sorted(maps.Keys(e.errors))
}

// Len returns the number of failed modules.
func (e *ModuleErrors) Len() int {
	return len(e.errors)
}

func (e *ModuleErrors) printSingleMessage(w io.Writer, name string) {
	fmt.Fprintf(w, "module %v: %v", name, e.errors[name])
}

// Error returns a short error message.
func (e *ModuleErrors) Error() string {
	if len(e.errors) == 0 {
		return "success"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%v modules failed, first: ", len(e.errors))
	e.printSingleMessage(&b, e.sortedNames()[0])
	return b.String()
}

// String returns a full multi-line error message containing
// all errors.
func (e *ModuleErrors) String() string {
	var b strings.Builder
	for _, name := range e.sortedNames() {
		e.printSingleMessage(&b, name)
		b.WriteByte('\n')
	}
	return b.String()
}

func (e *ModuleErrors) Unwrap() []error {
	if len(e.errors) == 0 {
		return nil
	}

	names := e.sortedNames()
	errs := make([]error, 0, len(names))
	for _, name := range names {
		errs = append(errs, e.errors[name])
	}
	return errs
}
