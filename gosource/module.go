package gosource

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/constant"
	"go/doc"
	"go/format"
	"go/token"
	"go/types"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/agentflare-ai/go-docrst/autodoc"
)

type entry struct {
	pos token.Position
	obj autodoc.Object
}

// builder turns one loaded package into an autodoc module.
type builder struct {
	pkg     *packages.Package
	fileset *token.FileSet
	reprs   map[string]string
	entries []entry
}

func buildModule(pkg *packages.Package, cfg Config) (*autodoc.Package, error) {
	if len(pkg.Syntax) == 0 {
		return nil, fmt.Errorf("%s: %w", pkg.PkgPath, errNoSyntax)
	}
	b := &builder{pkg: pkg, fileset: pkg.Fset}
	// go/doc trims the AST it is given, so values are rendered first.
	b.reprs = b.valueReprs()

	docPkg, err := doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pkg.PkgPath, err)
	}
	mod := &autodoc.Package{PackageName: pkg.PkgPath}
	if docPkg.Doc != "" {
		mod.Text = autodoc.Text(docPkg.Doc)
	}
	if docPkg.Name == "main" && !cfg.IncludeMain {
		return mod, nil
	}

	for _, v := range docPkg.Consts {
		b.addValues(v)
	}
	for _, v := range docPkg.Vars {
		b.addValues(v)
	}
	for _, f := range docPkg.Funcs {
		b.add(f.Decl.Name.Pos(), b.function(f))
	}
	for _, t := range docPkg.Types {
		b.addType(t)
	}

	sort.SliceStable(b.entries, func(i, j int) bool {
		pi, pj := b.entries[i].pos, b.entries[j].pos
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}
		return pi.Offset < pj.Offset
	})
	names := make([]string, 0, len(b.entries))
	objects := make(map[string]autodoc.Object, len(b.entries))
	for _, e := range b.entries {
		names = append(names, e.obj.Name())
		objects[e.obj.Name()] = e.obj
	}
	mod.Names = names
	mod.Objects = objects
	return mod, nil
}

func (b *builder) add(pos token.Pos, obj autodoc.Object) {
	b.entries = append(b.entries, entry{pos: b.fileset.Position(pos), obj: obj})
}

func (b *builder) addValues(v *doc.Value) {
	for _, spec := range v.Decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		for _, ident := range vs.Names {
			if !ident.IsExported() {
				continue
			}
			b.add(ident.Pos(), &autodoc.Value{ValueName: ident.Name, Text: b.reprs[ident.Name]})
		}
	}
}

func (b *builder) addType(t *doc.Type) {
	for _, v := range t.Consts {
		b.addValues(v)
	}
	for _, v := range t.Vars {
		b.addValues(v)
	}
	class := &autodoc.Class{ClassName: t.Name}
	if t.Doc != "" {
		class.Text = autodoc.Text(t.Doc)
	}
	for _, f := range t.Funcs {
		if f.Name == "New"+t.Name {
			ctor := b.function(f)
			class.Init = ctor
			class.Sig = &autodoc.Signature{Params: ctor.Sig.Params}
			continue
		}
		b.add(f.Decl.Name.Pos(), b.function(f))
	}
	for _, m := range t.Methods {
		if m.Decl == nil || m.Decl.Recv == nil {
			continue
		}
		class.Methods = append(class.Methods, b.method(m))
	}
	class.Methods = append(class.Methods, b.interfaceMethods(t)...)
	pos := t.Decl.Pos()
	if spec := findTypeSpec(t.Decl, t.Name); spec != nil {
		pos = spec.Name.Pos()
	}
	b.add(pos, class)
}

func (b *builder) function(f *doc.Func) *autodoc.Func {
	fn := &autodoc.Func{FuncName: f.Name, Sig: b.signature(f.Decl.Type)}
	if f.Doc != "" {
		fn.Text = autodoc.Text(f.Doc)
	}
	return fn
}

func (b *builder) method(f *doc.Func) *autodoc.Func {
	fn := b.function(f)
	recv := f.Decl.Recv.List[0]
	param := autodoc.Param{Annotation: b.formatNode(recv.Type)}
	if len(recv.Names) > 0 {
		param.Name = recv.Names[0].Name
	}
	fn.Sig.Params = append([]autodoc.Param{param}, fn.Sig.Params...)
	return fn
}

func (b *builder) interfaceMethods(t *doc.Type) []autodoc.Object {
	spec := findTypeSpec(t.Decl, t.Name)
	if spec == nil {
		return nil
	}
	iface, ok := spec.Type.(*ast.InterfaceType)
	if !ok || iface.Methods == nil {
		return nil
	}
	var methods []autodoc.Object
	for _, field := range iface.Methods.List {
		ft, ok := field.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			fn := &autodoc.Func{FuncName: name.Name, Sig: b.signature(ft)}
			if field.Doc != nil {
				fn.Text = autodoc.Text(field.Doc.Text())
			}
			fn.Sig.Params = append([]autodoc.Param{{Annotation: t.Name}}, fn.Sig.Params...)
			methods = append(methods, fn)
		}
	}
	return methods
}

func findTypeSpec(decl *ast.GenDecl, name string) *ast.TypeSpec {
	if decl == nil {
		return nil
	}
	for _, spec := range decl.Specs {
		ts, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		if ts.Name != nil && ts.Name.Name == name {
			return ts
		}
	}
	return nil
}

func (b *builder) signature(ft *ast.FuncType) *autodoc.Signature {
	sig := &autodoc.Signature{}
	if ft == nil {
		return sig
	}
	if ft.Params != nil {
		for _, field := range ft.Params.List {
			typ := b.formatNode(field.Type)
			if len(field.Names) == 0 {
				sig.Params = append(sig.Params, autodoc.Param{Annotation: typ})
				continue
			}
			for _, name := range field.Names {
				sig.Params = append(sig.Params, autodoc.Param{Name: name.Name, Annotation: typ})
			}
		}
	}
	sig.Result = b.results(ft.Results)
	return sig
}

func (b *builder) results(fields *ast.FieldList) string {
	if fields == nil || len(fields.List) == 0 {
		return ""
	}
	if len(fields.List) == 1 && len(fields.List[0].Names) == 0 {
		return b.formatNode(fields.List[0].Type)
	}
	parts := make([]string, 0, len(fields.List))
	for _, field := range fields.List {
		typ := b.formatNode(field.Type)
		if len(field.Names) == 0 {
			parts = append(parts, typ)
			continue
		}
		names := make([]string, len(field.Names))
		for i, n := range field.Names {
			names[i] = n.Name
		}
		parts = append(parts, strings.Join(names, ", ")+" "+typ)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// valueReprs renders every exported package-level constant and variable:
// constants by their exact value, variables by their initializer or type.
func (b *builder) valueReprs() map[string]string {
	reprs := make(map[string]string)
	for _, file := range b.pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || (gen.Tok != token.CONST && gen.Tok != token.VAR) {
				continue
			}
			for _, spec := range gen.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for i, ident := range vs.Names {
					if !ident.IsExported() {
						continue
					}
					var expr ast.Expr
					if i < len(vs.Values) && len(vs.Values) == len(vs.Names) {
						expr = vs.Values[i]
					}
					reprs[ident.Name] = b.valueRepr(ident.Name, expr, vs.Type)
				}
			}
		}
	}
	return reprs
}

func (b *builder) valueRepr(name string, expr, typ ast.Expr) string {
	var obj types.Object
	if b.pkg.Types != nil {
		obj = b.pkg.Types.Scope().Lookup(name)
	}
	if c, ok := obj.(*types.Const); ok {
		val := c.Val()
		switch val.Kind() {
		case constant.String, constant.Int:
			return val.ExactString()
		case constant.Float:
			// Float64Val reports inexact for most decimal literals; only
			// values outside the float64 range keep the short form.
			if f, _ := constant.Float64Val(val); !math.IsInf(f, 0) {
				return strconv.FormatFloat(f, 'g', -1, 64)
			}
		}
		return val.String()
	}
	if expr != nil {
		return b.formatNode(expr)
	}
	if v, ok := obj.(*types.Var); ok {
		return types.TypeString(v.Type(), b.qualifier)
	}
	if typ != nil {
		return b.formatNode(typ)
	}
	return name
}

func (b *builder) qualifier(p *types.Package) string {
	if p == b.pkg.Types {
		return ""
	}
	return p.Name()
}

func (b *builder) formatNode(node ast.Node) string {
	if node == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, b.fileset, node); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}
