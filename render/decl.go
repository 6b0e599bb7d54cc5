// Package render turns registry items into binding source text and
// assembles whole raw and friendly modules from embedded templates.
package render

import (
	"math/big"
	"strings"

	"github.com/refaktor/glgen/registry"
)

// Renderer renders single declarations.
// The zero value uses [PyCTypes].
type Renderer struct {
	Translate TypeTranslator
}

// ParseIntegerLiteral parses an integer literal with an optional sign,
// a 0x, 0o or 0b prefix and underscores between digits. Decimal
// literals other than zero may not have leading zeros.
func ParseIntegerLiteral(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 {
		return nil, false
	}
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
		default:
			if strings.Trim(digits, "0_") != "" {
				return nil, false
			}
		}
	}
	n, ok := new(big.Int).SetString(s, 0)
	return n, ok
}

// Enum renders e as a constant declaration. Values that are not
// integer literals are kept, commented out.
func (r *Renderer) Enum(e *registry.Enum) string {
	comment := ""
	if _, ok := ParseIntegerLiteral(e.Value); !ok {
		comment = "# "
	}
	return comment + e.Name + "=_C(" + pyRepr(e.Name) + "," + e.Value + ")"
}

var voidTypes = map[string]bool{
	"_cs.GLvoid": true,
	"_cs.void":   true,
	"void":       true,
}

// Function renders c as a documented binding declaration, without a
// trailing newline.
func (r *Renderer) Function(c *registry.Command) string {
	translate := r.Translate
	if translate == nil {
		translate = PyCTypes
	}

	returnType := translate(c.ReturnType)
	pyReturn := c.ReturnType
	if voidTypes[strings.TrimSpace(returnType)] {
		returnType = "None"
		pyReturn = "None"
	}

	argTypes := make([]string, len(c.ArgTypes))
	for i, t := range c.ArgTypes {
		argTypes[i] = translate(t)
	}
	var arguments []string
	for i := range min(len(c.ArgTypes), len(c.ArgNames)) {
		arguments = append(arguments, c.ArgTypes[i]+" "+c.ArgNames[i])
	}

	var cb CodeBuilder
	cb.Linef("# %v(%v) -> %v", c.Name, strings.Join(arguments, ", "), pyReturn)
	cb.Linef("@_f")
	cb.Linef("@_p.types(%v,%v)", returnType, strings.Join(argTypes, ","))
	cb.Linef("def %v(%v):pass", c.Name, strings.Join(c.ArgNames, ","))
	return strings.TrimSuffix(cb.String(), "\n")
}

// pyRepr quotes s as a single-quoted Python string literal.
func pyRepr(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s)
	return "'" + s + "'"
}
