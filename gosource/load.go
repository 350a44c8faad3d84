// Package gosource adapts Go packages to the autodoc provider interfaces.
//
// A package becomes a module whose export list holds its exported top-level
// functions, types, constants and variables in source order, followed by its
// nested packages. Types are documented as classes: a New<Type> constructor
// supplies the class signature and initializer docs, and methods keep their
// receiver as the first parameter.
package gosource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/go/packages"

	"github.com/agentflare-ai/go-docrst/autodoc"
)

// Config controls how packages are loaded and which ones expose exports.
type Config struct {
	// IncludeMain documents package main; otherwise such packages report no
	// export list and are skipped.
	IncludeMain bool
	Logger      logrus.FieldLogger
	// Dir is the working directory for package resolution; empty means the
	// current directory.
	Dir string
}

const loadMode = packages.NeedName | packages.NeedCompiledGoFiles | packages.NeedFiles |
	packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
	packages.NeedTypesSizes | packages.NeedModule | packages.NeedImports

// Load resolves pattern to a root package and returns it as a module, with
// every package below it in the import path hierarchy nested as submodules.
func Load(ctx context.Context, pattern string, cfg Config) (*autodoc.Package, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	rootPattern := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(pattern), "/..."), "\\...")
	if rootPattern == "" {
		rootPattern = "."
	}
	root, err := loadPackage(ctx, rootPattern, cfg.Dir)
	if err != nil {
		return nil, err
	}
	tree, err := loadPackageTree(ctx, rootPattern, cfg.Dir)
	if err != nil {
		return nil, err
	}

	modules := make(map[string]*autodoc.Package, len(tree)+1)
	rootMod, err := buildModule(root, cfg)
	if err != nil {
		return nil, err
	}
	modules[root.PkgPath] = rootMod
	log.WithFields(logrus.Fields{"package": root.PkgPath, "files": len(root.Syntax)}).Debug("loaded root package")

	for _, pkg := range tree {
		if pkg.PkgPath == root.PkgPath || !strings.HasPrefix(pkg.PkgPath, root.PkgPath+"/") {
			continue
		}
		mod, err := buildModule(pkg, cfg)
		if err != nil {
			return nil, err
		}
		modules[pkg.PkgPath] = mod
		log.WithField("package", pkg.PkgPath).Debug("loaded nested package")
	}

	for _, pkg := range tree {
		child, ok := modules[pkg.PkgPath]
		if !ok || pkg.PkgPath == root.PkgPath {
			continue
		}
		parent := nearestExporter(modules, pkg.PkgPath, root.PkgPath)
		if parent == nil {
			log.WithField("package", pkg.PkgPath).Debug("no documented ancestor, skipping")
			continue
		}
		name := path.Base(pkg.PkgPath)
		if _, taken := parent.Objects[name]; taken {
			name = pkg.PkgPath
		}
		parent.AddAs(name, child)
	}
	return rootMod, nil
}

// nearestExporter walks up from pkgPath to the closest loaded ancestor that
// has an export list.
func nearestExporter(modules map[string]*autodoc.Package, pkgPath, rootPath string) *autodoc.Package {
	for dir := path.Dir(pkgPath); ; dir = path.Dir(dir) {
		if mod, ok := modules[dir]; ok {
			if _, exported := mod.Exports(); exported {
				return mod
			}
		}
		if dir == rootPath || dir == "." || dir == "/" || !strings.HasPrefix(dir, rootPath) {
			return nil
		}
	}
}

func loadPackage(ctx context.Context, pattern, dir string) (*packages.Package, error) {
	cfg := &packages.Config{Context: ctx, Mode: loadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages matched %q", pattern)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("%s", pkg.Errors[0])
	}
	return pkg, nil
}

func loadPackageTree(ctx context.Context, root, dir string) ([]*packages.Package, error) {
	cfg := &packages.Config{Context: ctx, Mode: loadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, buildPatterns(root)...)
	if err != nil {
		return nil, err
	}
	unique := make(map[string]*packages.Package)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("%s", pkg.Errors[0])
		}
		if pkg.PkgPath == "" {
			continue
		}
		unique[pkg.PkgPath] = pkg
	}
	result := make([]*packages.Package, 0, len(unique))
	for _, pkg := range unique {
		result = append(result, pkg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PkgPath < result[j].PkgPath
	})
	return result, nil
}

func buildPatterns(root string) []string {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	patterns := []string{root}
	switch {
	case root == ".":
		patterns = append(patterns, "./...")
	case strings.HasSuffix(root, "/"):
		patterns = append(patterns, root+"...")
	default:
		patterns = append(patterns, root+"/...")
	}
	return patterns
}

var errNoSyntax = errors.New("package has no parsed files")
