package render

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateFuncMap = template.FuncMap{
	"pyRepr": pyRepr,
}

var templates = template.Must(template.New("").Funcs(templateFuncMap).ParseFS(templateFS, "templates/*.tmpl"))

// Kind selects the raw module template.
type Kind int

const (
	KindFull        Kind = iota // constants and functions
	KindNoFunctions             // constants only
	KindEmpty                   // neither
)

func (k Kind) String() string {
	switch k {
	case KindFull:
		return "full"
	case KindNoFunctions:
		return "no-functions"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

func (k Kind) templateName() string {
	switch k {
	case KindNoFunctions:
		return "raw_no_functions.py.tmpl"
	case KindEmpty:
		return "raw_empty.py.tmpl"
	default:
		return "raw_full.py.tmpl"
	}
}

// SelectKind picks the raw template for a module with the given
// number of constants and function declarations.
func SelectKind(nConstants, nDeclarations int) Kind {
	switch {
	case nDeclarations > 0:
		return KindFull
	case nConstants > 0:
		return KindNoFunctions
	default:
		return KindEmpty
	}
}

// RawContext feeds the raw module templates.
type RawContext struct {
	Prefix         string
	ConstantModule string
	Constants      []string // rendered by [Renderer.Enum]
	Declarations   []string // rendered by [Renderer.Function]
}

// FriendlyContext feeds the friendly module header template.
type FriendlyContext struct {
	Prefix      string
	Owner       string
	Module      string
	CamelModule string
	RawImport   string // dotted raw module path below OpenGL.raw
	Overview    string // formatted overview, "" or ending in a blank line
	SpecURL     string
	// Constants to register as glGet-queryable.
	GetConstants []string
}

// RenderRaw renders a complete raw module.
func RenderRaw(ctx RawContext) (string, error) {
	kind := SelectKind(len(ctx.Constants), len(ctx.Declarations))
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, kind.templateName(), ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderFriendly renders the generated header of a friendly module, up
// to and including the "DO NOT EDIT" line.
func RenderFriendly(ctx FriendlyContext) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "friendly.py.tmpl", ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}
