package specdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type block struct{ title, body string }

func collect(d *Document) []block {
	var res []block
	for title, body := range d.Blocks() {
		res = append(res, block{title, body})
	}
	return res
}

func TestBlocks(t *testing.T) {
	require := require.New(t)

	d := Parse("Name\n\n    foo\n\nName Strings\nSecond title line\n    GL_foo\n  GL_bar\nDangling title\n")
	require.Equal([]block{
		{"Name", "\nfoo\n"},
		{"Name Strings\nSecond title line", "  GL_foo\nGL_bar"},
	}, collect(d))

	require.Empty(collect(Parse("")))
	require.Empty(collect(Parse("only titles\nhere\n")))
}

func TestBlocksEarlyBreak(t *testing.T) {
	require := require.New(t)

	n := 0
	for range Parse("A\n  a\nB\n  b\nC\n  c\n").Blocks() {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(2, n)
}

func TestOverview(t *testing.T) {
	require := require.New(t)

	d := Parse("Overview\n    First line of prose.\n    Second line.\nIssues\n    none\n")
	require.Equal("Overview (from the spec)\n\tFirst line of prose.\n\tSecond line.\n\n", d.Overview())

	d = Parse("Overview\n    Fa\xd4ade café\n\n    next\n\nOverview again\n    ignored\n")
	require.Equal("Overview (from the spec)\n\tFaOade cafe\n\n\tnext\n\n", d.Overview())

	require.Equal("", Parse("Name\n    foo\n").Overview())
}

func TestSpecificationFile(t *testing.T) {
	require := require.New(t)

	data, err := os.ReadFile(filepath.Join("testdata", "blend_func_separate.txt"))
	require.NoError(err)
	d := Parse(string(data))

	require.Equal("Overview (from the spec)\n"+
		"\n"+
		"\tBlending capability is extended by defining a function that allows\n"+
		"\tindependent setting of the RGB and alpha blend factors for blend\n"+
		"\toperations that require source and destination blend factors.  It\n"+
		"\tis not always desired that the blending used for RGB is also applied\n"+
		"\tto alpha.\n\n", d.Overview())

	require.Equal(map[string]string{
		"GL_BLEND_DST_RGB_EXT":   "0x80C8",
		"GL_BLEND_SRC_RGB_EXT":   "0x80C9",
		"GL_BLEND_DST_ALPHA_EXT": "0x80CA",
		"GL_BLEND_SRC_ALPHA_EXT": "0x80CB",
	}, d.GetConstants())
}
