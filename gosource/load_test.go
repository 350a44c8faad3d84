package gosource

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/go-docrst/autodoc"
)

const examplePath = "github.com/agentflare-ai/go-docrst/testdata/example"

func loadExample(t *testing.T) *autodoc.Package {
	t.Helper()
	mod, err := Load(context.Background(), "../testdata/example", Config{})
	require.NoError(t, err)
	return mod
}

func TestLoadExportsInSourceOrder(t *testing.T) {
	mod := loadExample(t)
	assert.Equal(t, examplePath, mod.Name())

	names, ok := mod.Exports()
	require.True(t, ok)
	assert.Equal(t, []string{
		"Answer", "Greeter", "Shout", "Speaker", "Greeting", "Output",
		"Version", "Pi", "Big", "Ping",
		"subpkg",
	}, names)

	doc, ok := mod.Doc()
	require.True(t, ok)
	assert.Contains(t, doc, "Package example demonstrates documentation rendering")
}

func TestLoadClassifiesObjects(t *testing.T) {
	mod := loadExample(t)
	kinds := map[string]autodoc.Kind{
		"Answer":  autodoc.KindConstant,
		"Greeter": autodoc.KindClass,
		"Shout":   autodoc.KindRoutine,
		"Speaker": autodoc.KindClass,
		"Output":  autodoc.KindConstant,
		"subpkg":  autodoc.KindModule,
	}
	for name, want := range kinds {
		obj, err := mod.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, obj.Kind(), name)
	}
}

func TestLoadValueReprs(t *testing.T) {
	mod := loadExample(t)
	reprs := map[string]string{
		"Answer":   "42",
		"Greeting": `"hello"`,
		"Output":   "io.Writer",
		"Version":  `"1.0"`,
		"Pi":       "3.14159265358979",
		"Big":      "1267650600228229401496703205376",
	}
	for name, want := range reprs {
		obj, err := mod.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, obj.Repr(), name)
	}
}

func TestLoadRoutineSignature(t *testing.T) {
	mod := loadExample(t)
	obj, err := mod.Lookup("Shout")
	require.NoError(t, err)
	sig, ok := obj.Signature()
	require.True(t, ok)
	assert.Equal(t, "(msg: string, times: int) -> string", sig.String())
	doc, _ := obj.Doc()
	assert.Equal(t, "Shout upper-cases a message.\n", doc)
}

func TestLoadConstructorBecomesInitializer(t *testing.T) {
	mod := loadExample(t)
	obj, err := mod.Lookup("Greeter")
	require.NoError(t, err)

	sig, ok := obj.Signature()
	require.True(t, ok)
	assert.Equal(t, "(name: string)", sig.String())

	ctor, ok := obj.(autodoc.Initialized).Initializer()
	require.True(t, ok)
	doc, _ := ctor.Doc()
	assert.Equal(t, "NewGreeter constructs a Greeter.\n", doc)

	_, err = mod.Lookup("NewGreeter")
	assert.ErrorIs(t, err, autodoc.ErrUnknownName)
}

func TestLoadMethodsKeepReceiver(t *testing.T) {
	mod := loadExample(t)
	obj, err := mod.Lookup("Greeter")
	require.NoError(t, err)

	sigs := make(map[string]string)
	for _, m := range obj.Members() {
		sig, ok := m.Signature()
		require.True(t, ok)
		sigs[m.Name()] = sig.String()
	}
	assert.Equal(t, map[string]string{
		"Greet":    "(g: *Greeter) -> string",
		"GreetAll": "(g: *Greeter, sep: string, names: ...string) -> (out string, n int)",
		"Reset":    "(g: *Greeter)",
	}, sigs)
}

func TestLoadInterfaceMethods(t *testing.T) {
	mod := loadExample(t)
	obj, err := mod.Lookup("Speaker")
	require.NoError(t, err)
	require.Len(t, obj.Members(), 1)

	say := obj.Members()[0]
	assert.Equal(t, "Say", say.Name())
	sig, _ := say.Signature()
	assert.Equal(t, "(w: io.Writer) -> error", sig.WithoutReceiver().String())
}

func TestLoadNestedPackage(t *testing.T) {
	mod := loadExample(t)
	obj, err := mod.Lookup("subpkg")
	require.NoError(t, err)
	sub, ok := obj.(autodoc.Module)
	require.True(t, ok)
	assert.Equal(t, examplePath+"/subpkg", sub.Name())
	names, ok := sub.Exports()
	require.True(t, ok)
	assert.Equal(t, []string{"Message"}, names)
}

func TestLoadEmitsRST(t *testing.T) {
	mod := loadExample(t)
	var buf bytes.Buffer
	require.NoError(t, autodoc.Emit(&buf, mod, autodoc.Options{}))
	out := buf.String()

	assert.Contains(t, out, ".. py:module:: "+examplePath+"\n")
	assert.Contains(t, out, ".. py:class:: Greeter(name: string)\n    .. code-block:: pycon\n\n        Greeter produces greeting messages.\n\n        NewGreeter constructs a Greeter.\n\n")
	assert.Contains(t, out, "    .. py:method:: Greet() -> string\n")
	assert.Contains(t, out, "    .. py:method:: Say(w: io.Writer) -> error\n")
	assert.NotContains(t, out, "Reset", "undocumented methods are skipped")
	assert.Contains(t, out, ".. py:data:: Answer\n.. code-block:: pycon\n\n  42\n\n")
	assert.Contains(t, out, ".. py:module:: "+examplePath+"/subpkg\n\n.. py:data:: Message\n.. code-block:: pycon\n\n  \"nested\"\n\n")
}

func TestLoadMainPackageHasNoExports(t *testing.T) {
	mod, err := Load(context.Background(), "..", Config{})
	require.NoError(t, err)
	_, ok := mod.Exports()
	assert.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, autodoc.Emit(&buf, mod, autodoc.Options{}))
	assert.Zero(t, buf.Len())
}

func TestLoadIncludeMain(t *testing.T) {
	mod, err := Load(context.Background(), "..", Config{IncludeMain: true})
	require.NoError(t, err)
	names, ok := mod.Exports()
	require.True(t, ok)
	assert.Contains(t, names, "Version")
	assert.Contains(t, names, "autodoc")
	assert.Contains(t, names, "gosource")
}

func TestBuildPatterns(t *testing.T) {
	assert.Equal(t, []string{".", "./..."}, buildPatterns(""))
	assert.Equal(t, []string{"./pkg/", "./pkg/..."}, buildPatterns("./pkg/"))
	assert.Equal(t, []string{"./pkg", "./pkg/..."}, buildPatterns("./pkg"))
}

func TestLoadUnknownPackage(t *testing.T) {
	_, err := Load(context.Background(), "./does-not-exist", Config{})
	assert.Error(t, err)
}
