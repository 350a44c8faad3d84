// Package manifest reads module descriptions dumped by an external
// introspector and exposes them through the autodoc provider interfaces.
//
// A manifest is YAML (or JSON, which is valid YAML):
//
//	name: demo
//	items:
//	  - name: f
//	    kind: routine
//	    doc: does f
//	    signature: "(a, b=2)"
//	  - name: K
//	    kind: class
//	    doc: is K
//	    init: {doc: init K, signature: "(self)"}
//	    methods:
//	      - {name: m, doc: does m, signature: "(self)"}
//	  - name: X
//	    kind: constant
//	    repr: "42"
//	  - name: sub
//	    kind: module
//	    module: {name: demo.sub, items: []}
//
// Item order is export order. A module without an items key has no export
// list; an item without a doc key has no documentation.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/go-docrst/autodoc"
)

// Module is one module of a manifest.
type Module struct {
	Name  string  `yaml:"name" validate:"required"`
	Doc   *string `yaml:"doc,omitempty"`
	Items []*Item `yaml:"items" validate:"omitempty,dive,required"`
}

// Item is one exported object.
type Item struct {
	Name      string  `yaml:"name" validate:"required"`
	Kind      string  `yaml:"kind" validate:"required,oneof=routine function class module constant data"`
	Doc       *string `yaml:"doc,omitempty"`
	Signature string  `yaml:"signature,omitempty"`
	Repr      string  `yaml:"repr,omitempty"`
	Init      *Init   `yaml:"init,omitempty"`
	Methods   []*Item `yaml:"methods,omitempty" validate:"omitempty,dive,required"`
	Module    *Module `yaml:"module,omitempty" validate:"required_if=Kind module"`
}

// Init documents the routine a class runs on construction.
type Init struct {
	Doc       *string `yaml:"doc,omitempty"`
	Signature string  `yaml:"signature,omitempty"`
}

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()
	})
	return validatorInstance
}

// Load reads and converts the manifest at path.
func Load(path string) (*autodoc.Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	mod, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mod, nil
}

// Decode parses, validates and converts a manifest document.
func Decode(r io.Reader) (*autodoc.Package, error) {
	var m Module
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty manifest")
		}
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m.Package()
}

// Validate checks the manifest tree, including nested modules and methods.
func (m *Module) Validate() error {
	if err := getValidator().Struct(m); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}
	return nil
}

// Package converts the manifest into an autodoc module tree.
func (m *Module) Package() (*autodoc.Package, error) {
	pkg := &autodoc.Package{PackageName: m.Name, Text: m.Doc}
	if m.Items == nil {
		return pkg, nil
	}
	pkg.Names = []string{}
	pkg.Objects = make(map[string]autodoc.Object, len(m.Items))
	for _, item := range m.Items {
		if _, dup := pkg.Objects[item.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate item %q", m.Name, item.Name)
		}
		obj, err := item.object(m.Name)
		if err != nil {
			return nil, err
		}
		pkg.AddAs(item.Name, obj)
	}
	return pkg, nil
}

func (it *Item) object(module string) (autodoc.Object, error) {
	switch it.Kind {
	case "routine", "function":
		return it.routine(module)
	case "class":
		class := &autodoc.Class{ClassName: it.Name, Text: it.Doc}
		sig, err := it.signature(module)
		if err != nil {
			return nil, err
		}
		class.Sig = sig
		if it.Init != nil {
			ctor := &Item{Name: "__init__", Kind: "routine", Doc: it.Init.Doc, Signature: it.Init.Signature}
			if class.Init, err = ctor.routine(module + "." + it.Name); err != nil {
				return nil, err
			}
		}
		for _, m := range it.Methods {
			method, err := m.object(module + "." + it.Name)
			if err != nil {
				return nil, err
			}
			class.Methods = append(class.Methods, method)
		}
		return class, nil
	case "module":
		return it.Module.Package()
	default:
		return &autodoc.Value{ValueName: it.Name, Text: it.Repr}, nil
	}
}

func (it *Item) routine(module string) (*autodoc.Func, error) {
	sig, err := it.signature(module)
	if err != nil {
		return nil, err
	}
	return &autodoc.Func{FuncName: it.Name, Text: it.Doc, Sig: sig}, nil
}

func (it *Item) signature(module string) (*autodoc.Signature, error) {
	sig, ok, err := autodoc.ParseSignature(it.Signature)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", module, it.Name, err)
	}
	if !ok {
		return nil, nil
	}
	return &sig, nil
}
