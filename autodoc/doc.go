// Package autodoc writes reStructuredText API documentation for module trees.
//
// The emitter never inspects a runtime directly. It walks values that
// implement Module and Object, classifying each exported name by its Kind:
//
//   - routines become py:function directives with their call signature,
//   - classes become py:class directives followed by the initializer docs
//     and one py:method directive per documented public method,
//   - constants become py:data directives showing their representation,
//   - modules are deferred until every direct member of the parent has been
//     written, then documented depth first.
//
// Every docstring sits in a code-block. Missing documentation renders as an
// empty block and a signature that cannot be introspected renders as "(...)".
//
// Package, Func, Class and Value are in-memory implementations that adapters
// (and tests) can assemble by hand:
//
//	pkg := autodoc.NewPackage("demo").
//		Add(&autodoc.Func{FuncName: "f", Text: autodoc.Text("does f"), Sig: autodoc.Sig()}).
//		Add(&autodoc.Value{ValueName: "X", Text: "42"})
//	err := autodoc.Emit(w, pkg, autodoc.Options{Preamble: "API\n===\n\n"})
package autodoc
