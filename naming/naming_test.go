package naming

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var testOpts = Options{
	Root:    "OpenGL",
	RawRoot: filepath.Join("OpenGL", "raw"),
	Ext:     ".py",
}

func TestDeriveExtension(t *testing.T) {
	require := require.New(t)

	id, err := Derive("GL_ARB_vertex_array_object", "", testOpts)
	require.NoError(err)
	require.Equal(&Identity{
		Name:             "GL_ARB_vertex_array_object",
		Prefix:           "GL",
		Owner:            "ARB",
		RawOwner:         "ARB",
		Module:           "vertex_array_object",
		RawModule:        "vertex_array_object",
		CamelModule:      "VertexArrayObject",
		SentinelConstant: "ARB_vertex_array_object",
		ConstantModule:   "GL_ARB_vertex_array_object",
		PathOwner:        "ARB",
		RawPathName:      filepath.Join("OpenGL", "raw", "GL", "ARB", "vertex_array_object.py"),
		PathName:         filepath.Join("OpenGL", "GL", "ARB", "vertex_array_object.py"),
	}, id)
	require.Equal("ARB/vertex_array_object", id.SpecFragment())
	require.Equal("GL.ARB.vertex_array_object", id.RawImportPath())
}

func TestDeriveDigitOwner(t *testing.T) {
	require := require.New(t)

	id, err := Derive("GL_3DFX_multisample", "", testOpts)
	require.NoError(err)
	require.Equal("DFX", id.Owner)
	require.Equal("3DFX", id.RawOwner)
	require.Equal("GL_3DFX_multisample", id.ConstantModule)
	require.Equal("Multisample", id.CamelModule)
	require.Equal(filepath.Join("OpenGL", "GL", "DFX", "multisample.py"), id.PathName)
	require.Equal("3DFX/multisample", id.SpecFragment())

	opts := testOpts
	opts.RawOwnerPaths = true
	id, err = Derive("GL_3DFX_multisample", "", opts)
	require.NoError(err)
	require.Equal(filepath.Join("OpenGL", "raw", "GL", "3DFX", "multisample.py"), id.RawPathName)
}

func TestDeriveFeature(t *testing.T) {
	require := require.New(t)

	id, err := Derive("GL_VERSION_1_0", "gl", testOpts)
	require.NoError(err)
	require.Equal("GL", id.Prefix)
	require.Equal("VERSION", id.Owner)
	require.Equal("GL_1_0", id.Module)
	require.Equal("1_0", id.RawModule)
	require.Equal("Gl10", id.CamelModule)
	require.Equal("GL_VERSION_1_0", id.ConstantModule)
	require.Equal(filepath.Join("OpenGL", "GL", "VERSION", "GL_1_0.py"), id.PathName)

	id, err = Derive("GL_ES_VERSION_2_0", "gles2", testOpts)
	require.NoError(err)
	require.Equal("GLES2", id.Prefix)
	require.Equal("ES", id.Owner)
	require.Equal("VERSION_2_0", id.Module)
	require.Equal("Version20", id.CamelModule)
	require.Equal("GL_ES_VERSION_2_0", id.ConstantModule)
	require.Equal(filepath.Join("OpenGL", "GLES2", "ES", "VERSION_2_0.py"), id.PathName)
}

func TestDeriveExtensionForAPI(t *testing.T) {
	require := require.New(t)

	for _, tc := range []struct {
		name, api, prefix string
	}{
		{"GL_EXT_unpack_subimage", "gles2", "GLES2"},
		{"GL_EXT_unpack_subimage", "gl", "GL"},
		{"GL_OES_get_program_binary", "gles1", "GLES1"},
		{"GL_ES_VERSION_3_0", "gles2", "GLES2"},
	} {
		id, err := Derive(tc.name, tc.api, testOpts)
		require.NoError(err)
		require.Equal(tc.name, id.ConstantModule, tc.api)
		require.Equal(tc.prefix, id.Prefix, tc.name)
		require.Equal(filepath.Join("OpenGL", "raw", tc.prefix, id.PathOwner, id.Module+".py"), id.RawPathName)
	}

	id, err := Derive("GL_EXT_unpack_subimage", "gles2", testOpts)
	require.NoError(err)
	require.Equal("GLES2.EXT.unpack_subimage", id.RawImportPath())
	require.Equal(filepath.Join("OpenGL", "GLES2", "EXT", "unpack_subimage.py"), id.PathName)
}

func TestDeriveSGIXFallback(t *testing.T) {
	require := require.New(t)

	id, err := Derive("GL_FOOfragmentSGIX", "gles2", testOpts)
	require.NoError(err)
	require.Equal("GL", id.Prefix)
	require.Equal("SGIX", id.Owner)
	require.Equal("fragment", id.Module)
	require.Equal("fragmentSGIX", id.SentinelConstant)
	require.Equal("Fragment", id.CamelModule)
	require.Equal("GL_SGIX_fragment", id.ConstantModule)
}

func TestDeriveNamingError(t *testing.T) {
	require := require.New(t)

	for _, name := range []string{"GL", "GL_ARB", "GL_ARB_", "GL__foo", "GL_SGIX"} {
		_, err := Derive(name, "", testOpts)
		var nErr *NamingError
		require.ErrorAs(err, &nErr, name)
		require.Equal(name, nErr.Name)
	}
}
