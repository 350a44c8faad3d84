// # go-docrst
//
// `go-docrst` writes reStructuredText API documentation for a Go package and
// every package nested below it. The output uses Sphinx's Python domain
// directives (`py:module`, `py:function`, `py:class`, `py:method`,
// `py:data`) with each docstring inside a `code-block`, so it can be dropped
// into an existing Sphinx project next to hand-written pages.
//
// Key capabilities:
//
//   - document exported functions, types, constants and variables in source
//     order, followed by nested packages as their own sections.
//   - treat types as classes: a `New<Type>` constructor supplies the class
//     signature and initializer docs, documented methods are listed by name.
//   - render constants by their exact value and variables by their
//     initializer.
//   - document modules dumped by other introspectors from a YAML or JSON
//     manifest (`-manifest`).
//   - ship a Cobra-powered CLI with `--help`, `--version`, shell completion,
//     and a `gen-docs` helper for publishing the CLI reference itself.
//
// ## Usage
//
//	go run ./go-docrst [flags] [package]
//
// Examples:
//
//   - Document the current package tree under an "API" title:
//
//     go run ./go-docrst -title API -o docs/api.rst .
//
//   - Document a manifest written by a Python dumper:
//
//     go run ./go-docrst -manifest mc3.yaml -o docs/mc3_api.rst
//
// ## Supported Flags
//
//   - `-cmd`: document `package main` packages (skipped by default).
//   - `-o FILE`: write RST to `FILE` (stdout when omitted).
//   - `-title TEXT`: write `TEXT` underlined with `=` before the first section.
//   - `-preamble-file FILE`: write the file's contents before the first
//     section instead of a title.
//   - `-lang TAG`: language tag for `code-block` directives (default `pycon`).
//   - `-manifest FILE`: document a YAML/JSON manifest instead of Go packages.
//   - `-v`: log progress to stderr.
//
// ## Output
//
// Each module section starts with the module name underlined with `_` and a
// `py:module` directive. Members follow in export order; nested modules are
// written after all of their parent's members, depth first. A module without
// an export list produces no output.
package main
