package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectKind(t *testing.T) {
	require := require.New(t)

	require.Equal(KindFull, SelectKind(3, 2))
	require.Equal(KindFull, SelectKind(0, 1))
	require.Equal(KindNoFunctions, SelectKind(2, 0))
	require.Equal(KindEmpty, SelectKind(0, 0))
	require.Equal("no-functions", KindNoFunctions.String())
}

func TestRenderRawFull(t *testing.T) {
	require := require.New(t)

	got, err := RenderRaw(RawContext{
		Prefix:         "GL",
		ConstantModule: "GL_ARB_vertex_array_object",
		Constants:      []string{"GL_VERTEX_ARRAY_BINDING=_C('GL_VERTEX_ARRAY_BINDING',0x85B5)"},
		Declarations: []string{
			"# glBindVertexArray(GLuint array) -> None\n@_f\n@_p.types(None,_cs.GLuint)\ndef glBindVertexArray(array):pass",
		},
	})
	require.NoError(err)
	require.Equal(`'''Autogenerated by glgen, do not edit!'''
from OpenGL import platform as _p, arrays
# Code generation uses this
from OpenGL.raw.GL import _types as _cs
# End users want this...
from OpenGL.raw.GL._types import *
from OpenGL.raw.GL import _errors
from OpenGL.constant import Constant as _C

import ctypes
_EXTENSION_NAME = 'GL_ARB_vertex_array_object'
def _f( function ):
    return _p.createFunction( function,_p.PLATFORM.GL,'GL_ARB_vertex_array_object',error_checker=_errors._error_checker)
GL_VERTEX_ARRAY_BINDING=_C('GL_VERTEX_ARRAY_BINDING',0x85B5)
# glBindVertexArray(GLuint array) -> None
@_f
@_p.types(None,_cs.GLuint)
def glBindVertexArray(array):pass

`, got)
}

func TestRenderRawVariants(t *testing.T) {
	require := require.New(t)

	got, err := RenderRaw(RawContext{
		Prefix:         "GLES2",
		ConstantModule: "GL_OES_get_program_binary",
		Constants:      []string{"GL_PROGRAM_BINARY_LENGTH_OES=_C('GL_PROGRAM_BINARY_LENGTH_OES',0x8741)"},
	})
	require.NoError(err)
	require.Contains(got, "from OpenGL.raw.GLES2 import _types as _cs\n")
	require.Contains(got, "_EXTENSION_NAME = 'GL_OES_get_program_binary'\nGL_PROGRAM_BINARY_LENGTH_OES=")
	require.NotContains(got, "def _f(")

	got, err = RenderRaw(RawContext{Prefix: "GL", ConstantModule: "GL_SGIX_nothing"})
	require.NoError(err)
	require.Equal("'''Autogenerated by glgen, do not edit!'''\n_EXTENSION_NAME = 'GL_SGIX_nothing'\n", got)
}

func TestRenderFriendly(t *testing.T) {
	require := require.New(t)

	got, err := RenderFriendly(FriendlyContext{
		Prefix:      "GL",
		Owner:       "ARB",
		Module:      "vertex_array_object",
		CamelModule: "VertexArrayObject",
		RawImport:   "GL.ARB.vertex_array_object",
		SpecURL:     "http://www.opengl.org/registry/specs/ARB/vertex_array_object.txt",
	})
	require.NoError(err)
	require.Equal(`'''OpenGL extension ARB.vertex_array_object

This module customises the behaviour of the
OpenGL.raw.GL.ARB.vertex_array_object to provide a more
Python-friendly API

The official definition of this extension is available here:
http://www.opengl.org/registry/specs/ARB/vertex_array_object.txt
'''
from OpenGL import platform, constant, arrays
from OpenGL import extensions, wrapper
import ctypes
from OpenGL.raw.GL import _types, _glgets
from OpenGL.raw.GL.ARB.vertex_array_object import *
from OpenGL.raw.GL.ARB.vertex_array_object import _EXTENSION_NAME

def glInitVertexArrayObjectARB():
    '''Return boolean indicating whether this extension is available'''
    from OpenGL import extensions
    return extensions.hasGLExtension( _EXTENSION_NAME )

### DO NOT EDIT above the line "END AUTOGENERATED SECTION" below!
`, got)
}

func TestRenderFriendlyOverviewAndGetConstants(t *testing.T) {
	require := require.New(t)

	got, err := RenderFriendly(FriendlyContext{
		Prefix:       "GL",
		Owner:        "EXT",
		Module:       "blend_func_separate",
		CamelModule:  "BlendFuncSeparate",
		RawImport:    "GL.EXT.blend_func_separate",
		Overview:     "Overview (from the spec)\n\tBlending.\n\n",
		SpecURL:      "http://www.opengl.org/registry/specs/EXT/blend_func_separate.txt",
		GetConstants: []string{"GL_BLEND_DST_RGB_EXT", "GL_BLEND_SRC_RGB_EXT"},
	})
	require.NoError(err)
	require.Contains(got, "Python-friendly API\n\nOverview (from the spec)\n\tBlending.\n\nThe official definition")
	require.Contains(got, "import _EXTENSION_NAME\nfrom OpenGL.GL import glget\n\ndef glInit")
	require.Contains(got, "    return extensions.hasGLExtension( _EXTENSION_NAME )\n"+
		"glget.addGLGetConstant( GL_BLEND_DST_RGB_EXT, (1,) )\n"+
		"glget.addGLGetConstant( GL_BLEND_SRC_RGB_EXT, (1,) )\n"+
		"\n### DO NOT EDIT")
}
