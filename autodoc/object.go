package autodoc

import "errors"

// Kind tags a documentable object with exactly one of the supported shapes.
type Kind int

const (
	// KindConstant is any value that is not a routine, class or module.
	KindConstant Kind = iota
	// KindRoutine is a callable with a parameter list: functions, methods, builtins.
	KindRoutine
	// KindClass is a type that owns methods and an initializer.
	KindClass
	// KindModule is a nested module, documented after its parent's members.
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindRoutine:
		return "routine"
	case KindClass:
		return "class"
	case KindModule:
		return "module"
	default:
		return "constant"
	}
}

var (
	// ErrUnknownName is returned by Lookup when a module lists a name it cannot resolve.
	ErrUnknownName = errors.New("unknown exported name")
	// ErrNotModule is returned when an object tagged KindModule does not implement Module.
	ErrNotModule = errors.New("object tagged as module does not implement Module")
)

// Object is the capability interface the emitter documents. Adapters
// implement it for a particular host environment.
type Object interface {
	Kind() Kind
	Name() string
	// Doc returns the documentation text; ok is false when none is attached.
	Doc() (text string, ok bool)
	// Signature returns the call signature; ok is false when it cannot be introspected.
	Signature() (sig Signature, ok bool)
	// Members lists the methods of a class. Other kinds return nil.
	Members() []Object
	// Repr is the textual representation of a constant's value.
	Repr() string
}

// Initialized is implemented by classes that expose the routine invoked on
// construction.
type Initialized interface {
	Initializer() (Object, bool)
}

// Module is a named unit exposing an explicit, ordered export list.
type Module interface {
	Object
	// Exports returns the exported names in declaration order. ok is false
	// when the module has no export list at all.
	Exports() (names []string, ok bool)
	Lookup(name string) (Object, error)
}

// Func is an in-memory routine.
type Func struct {
	FuncName string
	Text     *string
	Sig      *Signature
}

func (f *Func) Kind() Kind        { return KindRoutine }
func (f *Func) Name() string      { return f.FuncName }
func (f *Func) Members() []Object { return nil }
func (f *Func) Repr() string      { return f.FuncName }

func (f *Func) Doc() (string, bool) {
	if f.Text == nil {
		return "", false
	}
	return *f.Text, true
}

func (f *Func) Signature() (Signature, bool) {
	if f.Sig == nil {
		return Signature{}, false
	}
	return *f.Sig, true
}

// Class is an in-memory class. Init, when set, is the initializer routine.
type Class struct {
	ClassName string
	Text      *string
	Sig       *Signature
	Init      *Func
	Methods   []Object
}

func (c *Class) Kind() Kind        { return KindClass }
func (c *Class) Name() string      { return c.ClassName }
func (c *Class) Members() []Object { return c.Methods }
func (c *Class) Repr() string      { return c.ClassName }

func (c *Class) Doc() (string, bool) {
	if c.Text == nil {
		return "", false
	}
	return *c.Text, true
}

func (c *Class) Signature() (Signature, bool) {
	if c.Sig == nil {
		return Signature{}, false
	}
	return *c.Sig, true
}

func (c *Class) Initializer() (Object, bool) {
	if c.Init == nil {
		return nil, false
	}
	return c.Init, true
}

// Value is an in-memory data constant.
type Value struct {
	ValueName string
	Text      string
}

func (v *Value) Kind() Kind                   { return KindConstant }
func (v *Value) Name() string                 { return v.ValueName }
func (v *Value) Doc() (string, bool)          { return "", false }
func (v *Value) Signature() (Signature, bool) { return Signature{}, false }
func (v *Value) Members() []Object            { return nil }
func (v *Value) Repr() string                 { return v.Text }

// Package is an in-memory module. A nil Names slice means the package has
// no export list; an empty non-nil slice means it exports nothing.
type Package struct {
	PackageName string
	Text        *string
	Names       []string
	Objects     map[string]Object
}

// NewPackage returns an empty package with an export list.
func NewPackage(name string) *Package {
	return &Package{
		PackageName: name,
		Names:       []string{},
		Objects:     make(map[string]Object),
	}
}

// Add appends obj to the export list under its own name.
func (p *Package) Add(obj Object) *Package {
	return p.AddAs(obj.Name(), obj)
}

// AddAs appends obj to the export list under name.
func (p *Package) AddAs(name string, obj Object) *Package {
	if p.Objects == nil {
		p.Objects = make(map[string]Object)
	}
	if p.Names == nil {
		p.Names = []string{}
	}
	p.Names = append(p.Names, name)
	p.Objects[name] = obj
	return p
}

func (p *Package) Kind() Kind                   { return KindModule }
func (p *Package) Name() string                 { return p.PackageName }
func (p *Package) Signature() (Signature, bool) { return Signature{}, false }
func (p *Package) Members() []Object            { return nil }
func (p *Package) Repr() string                 { return "<module " + p.PackageName + ">" }

func (p *Package) Doc() (string, bool) {
	if p.Text == nil {
		return "", false
	}
	return *p.Text, true
}

func (p *Package) Exports() ([]string, bool) {
	if p.Names == nil {
		return nil, false
	}
	return p.Names, true
}

func (p *Package) Lookup(name string) (Object, error) {
	obj, ok := p.Objects[name]
	if !ok || obj == nil {
		return nil, ErrUnknownName
	}
	return obj, nil
}

// Text returns a pointer to s, for populating optional docstrings.
func Text(s string) *string {
	return &s
}
