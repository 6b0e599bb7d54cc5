// Package naming derives the identifiers and output paths of a
// generated module from its registry name.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
)

// NamingError is returned when a registry name has neither an
// owner/module split nor a known legacy form.
type NamingError struct {
	Name string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("unable to parse module name: %v", e.Name)
}

// Options configures path construction.
type Options struct {
	Root    string // friendly output root
	RawRoot string // raw output root
	Ext     string // file extension including the dot
	// RawOwnerPaths uses [Identity.RawOwner] for the owner directory
	// ("GL/3DFX") instead of the legacy layout with the display owner
	// ("GL/DFX").
	RawOwnerPaths bool
}

// Identity is everything derived from a registry module name.
type Identity struct {
	Name string // registry name, e.g. "GL_ARB_vertex_array_object"

	Prefix   string // "GL"
	Owner    string // display owner, leading digits stripped: "3DFX" -> "DFX"
	RawOwner string // owner as written in the registry

	Module      string // "vertex_array_object"; "GL_3_0" style if digit-led
	RawModule   string // module before digit prefixing
	CamelModule string // "VertexArrayObject"

	SentinelConstant string
	ConstantModule   string // extension name string used for availability checks

	PathOwner   string // owner directory used in both trees
	RawPathName string
	PathName    string
}

// Derive computes the identity of the module called name. api is the
// API the module is generated for; it selects the prefix of paths and
// imports. Empty means the name's first token is used.
func Derive(name, api string, opts Options) (*Identity, error) {
	id := &Identity{Name: name}

	first, rest, ok := strings.Cut(name, "_")
	if !ok {
		return nil, &NamingError{Name: name}
	}
	// The api only decides where the module goes. The availability
	// string keeps the registry's own prefix.
	namePrefix := first
	if api != "" {
		id.Prefix = strings.ToUpper(api)
	} else {
		id.Prefix = first
	}

	owner, module, ok := strings.Cut(rest, "_")
	switch {
	case ok && owner != "" && module != "":
		id.RawOwner = owner
		id.RawModule = module
		id.SentinelConstant = owner + "_" + module
	case strings.HasSuffix(rest, "SGIX") && len(rest) > len("SGIX")+3:
		id.Prefix = "GL"
		namePrefix = "GL"
		id.RawOwner = "SGIX"
		id.RawModule = rest[3 : len(rest)-4]
		id.SentinelConstant = id.RawModule + id.RawOwner
	default:
		return nil, &NamingError{Name: name}
	}

	id.Module = id.RawModule
	if startsWithDigit(id.Module) {
		id.Module = id.Prefix + "_" + id.Module
	}
	id.CamelModule = strcase.ToCamel(strings.ToLower(id.Module))

	id.Owner = strings.TrimLeft(id.RawOwner, "0123456789")
	id.ConstantModule = namePrefix + "_" + id.RawOwner + "_" + id.RawModule

	id.PathOwner = id.Owner
	if opts.RawOwnerPaths {
		id.PathOwner = id.RawOwner
	}
	file := id.Module + opts.Ext
	id.RawPathName = filepath.Join(opts.RawRoot, id.Prefix, id.PathOwner, file)
	id.PathName = filepath.Join(opts.Root, id.Prefix, id.PathOwner, file)

	return id, nil
}

// SpecFragment returns the "<OWNER>/<name>" part of the specification
// URL: the registry name without its first token, with the following
// underscore turned into a slash.
func (id *Identity) SpecFragment() string {
	sp := strings.SplitN(id.Name, "_", 3)
	return strings.Join(sp[1:], "/")
}

// RawImportPath is the dotted path of the raw module relative to the
// package root, e.g. "GL.ARB.vertex_array_object".
func (id *Identity) RawImportPath() string {
	return id.Prefix + "." + id.PathOwner + "." + id.Module
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
