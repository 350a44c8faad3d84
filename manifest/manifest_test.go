package manifest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/go-docrst/autodoc"
)

func TestLoadYAMLEmitsRST(t *testing.T) {
	mod, err := Load("testdata/demo.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, autodoc.Emit(&buf, mod, autodoc.Options{}))

	want := "demo\n____\n\n.. py:module:: demo\n\n" +
		".. py:function:: f()\n.. code-block:: pycon\n\n    does f\n\n" +
		".. py:class:: K(a, *, strict: bool = False)\n    .. code-block:: pycon\n\n        is K\n\n" +
		"        init K\n\n" +
		"    .. py:method:: m()\n    .. code-block:: pycon\n\n        does m\n\n" +
		".. py:data:: X\n.. code-block:: pycon\n\n  42\n\n" +
		".. py:function:: native(...)\n.. code-block:: pycon\n\n    a builtin without an introspectable signature\n\n" +
		"demo.sub\n________\n\n.. py:module:: demo.sub\n\n" +
		".. py:function:: helper(a, b=2)\n.. code-block:: pycon\n\n" +
		"    Help out.\n\n    Examples\n    --------\n    >>> helper(1, b=2)\n\n"
	assert.Equal(t, want, buf.String())
}

func TestLoadJSON(t *testing.T) {
	mod, err := Load("testdata/demo.json")
	require.NoError(t, err)

	names, ok := mod.Exports()
	require.True(t, ok)
	assert.Equal(t, []string{"f", "X"}, names)

	x, err := mod.Lookup("X")
	require.NoError(t, err)
	assert.Equal(t, autodoc.KindConstant, x.Kind())
	assert.Equal(t, "[1, 2, 3]", x.Repr())
}

func TestDecodeDistinguishesMissingAndEmptyItems(t *testing.T) {
	missing, err := Decode(strings.NewReader("name: bare\n"))
	require.NoError(t, err)
	_, ok := missing.Exports()
	assert.False(t, ok)

	empty, err := Decode(strings.NewReader("name: empty\nitems: []\n"))
	require.NoError(t, err)
	names, ok := empty.Exports()
	assert.True(t, ok)
	assert.Empty(t, names)
}

func TestDecodeMissingDoc(t *testing.T) {
	mod, err := Decode(strings.NewReader("name: m\nitems:\n  - {name: g, kind: routine}\n"))
	require.NoError(t, err)
	g, err := mod.Lookup("g")
	require.NoError(t, err)
	_, ok := g.Doc()
	assert.False(t, ok)
	_, ok = g.Signature()
	assert.False(t, ok)
}

func TestDecodeValidation(t *testing.T) {
	cases := map[string]string{
		"missing module name": "items: []\n",
		"missing item name":   "name: m\nitems:\n  - {kind: routine}\n",
		"unknown kind":        "name: m\nitems:\n  - {name: a, kind: widget}\n",
		"module without body": "name: m\nitems:\n  - {name: a, kind: module}\n",
		"nested invalid":      "name: m\nitems:\n  - {name: a, kind: module, module: {items: []}}\n",
	}
	for name, doc := range cases {
		_, err := Decode(strings.NewReader(doc))
		assert.ErrorContains(t, err, "invalid manifest", name)
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.EqualError(t, err, "empty manifest")

	_, err = Decode(strings.NewReader("name: [unterminated\n"))
	assert.ErrorContains(t, err, "decode manifest")

	_, err = Decode(strings.NewReader("name: m\nitems:\n  - {name: a, kind: routine, signature: \"(a, b\"}\n"))
	assert.ErrorContains(t, err, "m.a")

	_, err = Decode(strings.NewReader("name: m\nitems:\n  - {name: a, kind: constant}\n  - {name: a, kind: constant}\n"))
	assert.ErrorContains(t, err, "duplicate item")

	_, err = Load("testdata/missing.yaml")
	assert.ErrorContains(t, err, "open manifest")
}
