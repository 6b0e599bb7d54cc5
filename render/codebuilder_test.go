package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func ExampleCodeBuilder() {
	var cb CodeBuilder
	cb.Linef("def %v():", "glInitFooARB")
	cb.Indent++
	cb.Append("from OpenGL import extensions\nreturn extensions.hasGLExtension( _EXTENSION_NAME )")
	cb.Indent--
	fmt.Print(cb.String())
	// Output:
	// def glInitFooARB():
	//     from OpenGL import extensions
	//     return extensions.hasGLExtension( _EXTENSION_NAME )
}

func TestCodeBuilderReset(t *testing.T) {
	require := require.New(t)

	cb := CodeBuilder{IndentUnit: "\t"}
	cb.Indent = 2
	cb.Linef("x = %v", 1)
	require.Equal("\t\tx = 1\n", cb.String())

	cb.Reset()
	require.Equal(0, cb.Indent)
	require.Equal("", cb.String())
	cb.Linef("y")
	require.Equal("y\n", cb.String())
}
