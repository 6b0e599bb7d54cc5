// Package registry holds the in-memory model of an API registry: the
// modules (extensions and core feature blocks) and the enums and
// commands each of them requires.
package registry

import "context"

// Kind tags the concrete type of an [Item].
type Kind int

const (
	KindEnum Kind = iota
	KindCommand
)

func (k Kind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Item is an element of a requirement group, either an [*Enum] or a
// [*Command].
type Item interface {
	Kind() Kind
	ItemName() string
}

// Enum is a named constant. Value is the literal text from the
// registry and is not necessarily an integer.
type Enum struct {
	Name  string
	Value string
}

func (e *Enum) Kind() Kind       { return KindEnum }
func (e *Enum) ItemName() string { return e.Name }

// Command is a function declaration. ArgTypes and ArgNames are
// parallel slices.
type Command struct {
	Name       string
	ReturnType string
	ArgTypes   []string
	ArgNames   []string
}

func (c *Command) Kind() Kind       { return KindCommand }
func (c *Command) ItemName() string { return c.Name }

// Requirement is a group of items a module requires (Require is true)
// or removes (Require is false).
type Requirement struct {
	Require bool
	Items   []Item
}

// Module is an extension or a core feature block.
type Module struct {
	Name string
	// API the module is generated for ("gl", "gles2", ...). Extensions
	// supported by several APIs appear once per API. Empty means the
	// prefix is taken from the name.
	API          string
	Feature      bool
	Requirements []Requirement
}

// Enums returns the enums of all require groups in document order.
func (m *Module) Enums() []*Enum {
	var res []*Enum
	for _, req := range m.Requirements {
		if !req.Require {
			continue
		}
		for _, it := range req.Items {
			if e, ok := it.(*Enum); ok {
				res = append(res, e)
			}
		}
	}
	return res
}

// Commands returns the commands of all require groups in document order.
func (m *Module) Commands() []*Command {
	var res []*Command
	for _, req := range m.Requirements {
		if !req.Require {
			continue
		}
		for _, it := range req.Items {
			if c, ok := it.(*Command); ok {
				res = append(res, c)
			}
		}
	}
	return res
}

type Registry struct {
	Modules []*Module
}

// Lookup returns the first module with the given name, or nil.
func (r *Registry) Lookup(name string) *Module {
	for _, m := range r.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Load returns r itself, so an in-memory registry can be used as a
// [Source].
func (r *Registry) Load(ctx context.Context) (*Registry, error) {
	return r, nil
}

// Source provides a registry, typically by parsing a file.
type Source interface {
	Load(ctx context.Context) (*Registry, error)
}
