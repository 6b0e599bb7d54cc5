package render

import (
	"strings"
)

// TypeTranslator maps a C declaration type from the registry, such as
// "const GLfloat *", to the type expression used in binding
// declarations.
type TypeTranslator func(ctype string) string

// Scalars that have a dedicated array type in the runtime's arrays
// module.
var arrayTypes = map[string]bool{
	"GLbyte":    true,
	"GLubyte":   true,
	"GLshort":   true,
	"GLushort":  true,
	"GLint":     true,
	"GLuint":    true,
	"GLint64":   true,
	"GLuint64":  true,
	"GLfloat":   true,
	"GLdouble":  true,
	"GLboolean": true,
	"GLenum":    true,
	"GLsizei":   true,
	"GLchar":    true,
	"GLfixed":   true,
}

// PyCTypes is the default [TypeTranslator]. Scalars become "_cs.<T>",
// single pointers to known scalars become "arrays.<T>Array", void
// pointers become "ctypes.c_void_p" and anything else is wrapped in
// ctypes.POINTER once per indirection.
func PyCTypes(ctype string) string {
	var base []string
	nPtrs := 0
	for _, tok := range strings.Fields(strings.ReplaceAll(ctype, "*", " * ")) {
		switch tok {
		case "*":
			nPtrs++
		case "const":
		default:
			base = append(base, tok)
		}
	}
	if len(base) == 0 {
		base = []string{"void"}
	}
	if len(base) > 1 {
		// struct and other compound declarations are opaque handles
		return "ctypes.c_void_p"
	}
	t := base[0]

	switch {
	case nPtrs == 0:
		return "_cs." + t
	case t == "void" || t == "GLvoid":
		return wrapPointer("ctypes.c_void_p", nPtrs-1)
	case nPtrs == 1 && arrayTypes[t]:
		return "arrays." + t + "Array"
	default:
		return wrapPointer("_cs."+t, nPtrs)
	}
}

func wrapPointer(t string, n int) string {
	return strings.Repeat("ctypes.POINTER(", n) + t + strings.Repeat(")", n)
}
