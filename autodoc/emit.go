package autodoc

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultLang is the code-block language tag used when Options.Lang is empty.
	DefaultLang = "pycon"

	indentUnit  = "    "
	privateMark = "_"
)

// Options configures Emit.
type Options struct {
	// Preamble is written verbatim once, before the first module section.
	Preamble string
	// Lang is the code-block language tag.
	Lang string
	// Logger receives progress at debug level. Output is discarded when nil.
	Logger logrus.FieldLogger
}

// Emitter writes RST documentation for module trees to a single sink.
type Emitter struct {
	w       io.Writer
	lang    string
	log     logrus.FieldLogger
	visited map[any]struct{}
}

// NewEmitter returns an emitter writing to w. The caller owns w.
func NewEmitter(w io.Writer, opts Options) *Emitter {
	lang := opts.Lang
	if lang == "" {
		lang = DefaultLang
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Emitter{
		w:       w,
		lang:    lang,
		log:     log,
		visited: make(map[any]struct{}),
	}
}

// Emit writes RST documentation for m and, depth first, every submodule
// reachable through its export list. A module without an export list
// produces no output at all.
func Emit(w io.Writer, m Module, opts Options) error {
	if _, ok := m.Exports(); !ok {
		return nil
	}
	e := NewEmitter(w, opts)
	if opts.Preamble != "" {
		if err := e.write(opts.Preamble); err != nil {
			return err
		}
	}
	return e.Module(m)
}

// Module writes the section for m followed by its deferred submodules.
// Modules already written by this emitter are skipped.
func (e *Emitter) Module(m Module) error {
	names, ok := m.Exports()
	if !ok {
		e.log.WithField("module", m.Name()).Debug("no export list, skipping")
		return nil
	}
	key := identity(m)
	if _, seen := e.visited[key]; seen {
		e.log.WithField("module", m.Name()).Debug("module already documented, skipping")
		return nil
	}
	e.visited[key] = struct{}{}
	e.log.WithFields(logrus.Fields{"module": m.Name(), "exports": len(names)}).Debug("documenting module")

	title := m.Name()
	rule := strings.Repeat("_", utf8.RuneCountInString(title))
	if err := e.write(fmt.Sprintf("%s\n%s\n\n.. py:module:: %s\n\n", title, rule, title)); err != nil {
		return err
	}

	var submodules []Module
	for _, name := range names {
		obj, err := m.Lookup(name)
		if err == nil && obj == nil {
			err = ErrUnknownName
		}
		if err != nil {
			return fmt.Errorf("lookup %s.%s: %w", m.Name(), name, err)
		}
		switch obj.Kind() {
		case KindRoutine:
			err = e.routine(name, obj)
		case KindClass:
			err = e.class(name, obj)
		case KindModule:
			sub, ok := obj.(Module)
			if !ok {
				return fmt.Errorf("%s.%s: %w", m.Name(), name, ErrNotModule)
			}
			submodules = append(submodules, sub)
		default:
			err = e.constant(name, obj)
		}
		if err != nil {
			return err
		}
	}

	for _, sub := range submodules {
		if err := e.Module(sub); err != nil {
			return err
		}
	}
	return nil
}

// identity keys the visited set. Distinct modules sharing a name are both
// documented; a module type that cannot be compared falls back to its name.
func identity(m Module) any {
	if reflect.TypeOf(m).Comparable() {
		return m
	}
	return m.Name()
}

func (e *Emitter) routine(name string, obj Object) error {
	var b strings.Builder
	fmt.Fprintf(&b, ".. py:function:: %s%s\n", name, signatureOf(obj, false))
	fmt.Fprintf(&b, ".. code-block:: %s\n\n", e.lang)
	b.WriteString(Indent(docOf(obj), indentUnit))
	b.WriteString("\n\n")
	return e.write(b.String())
}

func (e *Emitter) class(name string, obj Object) error {
	var b strings.Builder
	fmt.Fprintf(&b, ".. py:class:: %s%s\n", name, signatureOf(obj, false))
	fmt.Fprintf(&b, "%s.. code-block:: %s\n\n", indentUnit, e.lang)
	b.WriteString(Indent(docOf(obj), indentUnit+indentUnit))
	b.WriteString("\n\n")
	if init, ok := initializerOf(obj); ok {
		// Undocumented initializers are omitted.
		if doc := docOf(init); doc != "" {
			b.WriteString(Indent(doc, indentUnit+indentUnit))
			b.WriteString("\n\n")
		}
	}
	for _, method := range publicMethods(obj) {
		fmt.Fprintf(&b, "%s.. py:method:: %s%s\n", indentUnit, method.Name(), signatureOf(method, true))
		fmt.Fprintf(&b, "%s.. code-block:: %s\n\n", indentUnit, e.lang)
		b.WriteString(Indent(docOf(method), indentUnit+indentUnit))
		b.WriteString("\n\n")
	}
	return e.write(b.String())
}

func (e *Emitter) constant(name string, obj Object) error {
	var b strings.Builder
	fmt.Fprintf(&b, ".. py:data:: %s\n", name)
	fmt.Fprintf(&b, ".. code-block:: %s\n\n", e.lang)
	b.WriteString(Indent(obj.Repr(), "  "))
	b.WriteString("\n\n")
	return e.write(b.String())
}

func (e *Emitter) write(s string) error {
	if _, err := io.WriteString(e.w, s); err != nil {
		return fmt.Errorf("write rst: %w", err)
	}
	return nil
}

func docOf(obj Object) string {
	text, ok := obj.Doc()
	if !ok {
		return ""
	}
	return CleanDoc(text)
}

func signatureOf(obj Object, method bool) string {
	sig, ok := obj.Signature()
	if !ok {
		return Unavailable
	}
	if method {
		sig = sig.WithoutReceiver()
	}
	return sig.String()
}

func initializerOf(obj Object) (Object, bool) {
	in, ok := obj.(Initialized)
	if !ok {
		return nil, false
	}
	return in.Initializer()
}

// publicMethods returns the documented, non-private routine members of a
// class ordered by name.
func publicMethods(obj Object) []Object {
	var methods []Object
	for _, m := range obj.Members() {
		if m == nil || m.Kind() != KindRoutine || strings.HasPrefix(m.Name(), privateMark) {
			continue
		}
		if docOf(m) == "" {
			continue
		}
		methods = append(methods, m)
	}
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].Name() < methods[j].Name()
	})
	return methods
}
