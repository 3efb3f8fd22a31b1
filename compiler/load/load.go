// Package load locates annotated type declarations in user packages and
// turns them into a serializable description the generator consumes. It
// resolves packages through the go/packages driver, so build tags, cgo and
// vendoring behave exactly as they do for the go tool itself.
package load

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// DirectiveName is the comment namespace the loader recognizes on variant
// declarations: //multi_version(...). Directive comments follow the Go
// toolchain convention of no space after the slashes; a commented-out
// directive like "// multi_version(...)" is treated as prose and ignored.
const DirectiveName = "multi_version"

// loadMode requests syntax trees and full type information: syntax carries
// the directive comments, type information resolves each constant to the
// type it belongs to.
const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Config is the loader configuration.
type Config struct {
	// Path is the package to load, as a directory or an import path.
	// Empty means the package in the current directory.
	Path string

	// Names are the type names to load. Empty selects every type in the
	// package that carries at least one multi_version directive.
	Names []string

	// BuildFlags are extra flags for the underlying build system,
	// e.g. -tags=integration.
	BuildFlags []string

	// Cache, if non-nil, is consulted before parsing and updated after.
	Cache *Cache

	// Logger reports load progress. Nop when nil.
	Logger *zap.Logger
}

// Load parses the configured package and returns the selected type
// declarations, each with its constants in declaration order.
func (c *Config) Load(ctx context.Context) ([]*Enum, error) {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	path := c.Path
	if path == "" {
		path = "."
	}
	var sum string
	if c.Cache != nil {
		if s, err := HashDir(path); err == nil {
			sum = s
			if enums, ok := c.Cache.Get(sum); ok {
				logger.Debug("load cache hit",
					zap.String("path", path),
					zap.String("sum", sum),
				)
				return c.filter(enums)
			}
		}
	}
	enums, err := c.parse(ctx, path)
	if err != nil {
		return nil, err
	}
	if c.Cache != nil && sum != "" {
		c.Cache.Put(sum, enums)
	}
	logger.Debug("parsed package",
		zap.String("path", path),
		zap.Int("types", len(enums)),
	)
	return c.filter(enums)
}

// parse loads the package and builds the full type inventory: every defined
// type at package scope, with its constants and their directives.
func (c *Config) parse(ctx context.Context, path string) ([]*Enum, error) {
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		BuildFlags: c.BuildFlags,
	}
	pkgs, err := packages.Load(cfg, path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("load %q: no packages matched", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("load %q: matched %d packages, want one per run", path, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, perr := range pkg.Errors {
			errs = append(errs, perr)
		}
		return nil, fmt.Errorf("load %q: %w", path, errors.Join(errs...))
	}

	var (
		enums []*Enum
		index = make(map[string]*Enum)
	)
	// First pass: type declarations. Constants may precede the type they
	// belong to, so variants are attached in a second pass.
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Assign.IsValid() {
					continue // aliases are not declarations of their own
				}
				e, err := newEnum(pkg, ts)
				if err != nil {
					return nil, err
				}
				enums = append(enums, e)
				index[e.Name] = e
			}
		}
	}
	// Second pass: constants, in file order then declaration order.
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				attrs, err := directives(pkg.Fset, gd, vs)
				if err != nil {
					return nil, err
				}
				for _, name := range vs.Names {
					if name.Name == "_" {
						continue
					}
					obj := pkg.TypesInfo.Defs[name]
					if obj == nil {
						continue
					}
					e := index[localTypeName(pkg, obj.Type())]
					if e == nil {
						continue
					}
					e.Variants = append(e.Variants, &Variant{
						Name:  name.Name,
						Pos:   pkg.Fset.Position(name.Pos()),
						Attrs: attrs,
					})
				}
			}
		}
	}
	return enums, nil
}

// filter applies the Names selection to the loaded inventory.
func (c *Config) filter(enums []*Enum) ([]*Enum, error) {
	if len(c.Names) == 0 {
		annotated := make([]*Enum, 0, len(enums))
		for _, e := range enums {
			if e.HasDirective(DirectiveName) {
				annotated = append(annotated, e)
			}
		}
		return annotated, nil
	}
	index := make(map[string]*Enum, len(enums))
	for _, e := range enums {
		index[e.Name] = e
	}
	selected := make([]*Enum, 0, len(c.Names))
	for _, name := range c.Names {
		e, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("type %q not found in package %q", name, c.Path)
		}
		selected = append(selected, e)
	}
	return selected, nil
}

// newEnum builds the loaded description of one type declaration.
func newEnum(pkg *packages.Package, ts *ast.TypeSpec) (*Enum, error) {
	pos := pkg.Fset.Position(ts.Name.Pos())
	e := &Enum{
		Name:    ts.Name.Name,
		Pkg:     pkg.Name,
		PkgPath: pkg.PkgPath,
		Dir:     filepath.Dir(pos.Filename),
		Kind:    KindOther,
		Pos:     pos,
	}
	if tp := ts.TypeParams; tp != nil {
		for _, field := range tp.List {
			for _, name := range field.Names {
				e.TypeParams = append(e.TypeParams, name.Name)
			}
		}
	}
	obj, ok := pkg.Types.Scope().Lookup(ts.Name.Name).(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("lookup type %q in %s", ts.Name.Name, pkg.PkgPath)
	}
	switch u := obj.Type().Underlying().(type) {
	case *types.Basic:
		if u.Info()&types.IsInteger != 0 {
			e.Kind = KindEnum
			e.Repr = u.Name()
		}
	case *types.Struct:
		e.Kind = KindStruct
	case *types.Interface:
		e.Kind = KindInterface
	}
	return e, nil
}

// localTypeName returns the name of t if it is a type defined in the loaded
// package, and "" otherwise.
func localTypeName(pkg *packages.Package, t types.Type) string {
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() != pkg.Types {
		return ""
	}
	return named.Obj().Name()
}

// directives extracts the multi_version directives attached to a constant
// declaration. For an unparenthesized declaration the comment sits on the
// GenDecl rather than the ValueSpec, so both doc groups are consulted, plus
// the trailing comment on the line itself.
func directives(fset *token.FileSet, gd *ast.GenDecl, vs *ast.ValueSpec) ([]*Attr, error) {
	groups := make([]*ast.CommentGroup, 0, 3)
	if !gd.Lparen.IsValid() {
		groups = append(groups, gd.Doc)
	}
	groups = append(groups, vs.Doc, vs.Comment)

	var attrs []*Attr
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			attr, err := parseDirective(fset, comment)
			if err != nil {
				return nil, err
			}
			if attr != nil {
				attrs = append(attrs, attr)
			}
		}
	}
	return attrs, nil
}

// parseDirective returns the directive carried by the comment, or nil if the
// comment is not one.
func parseDirective(fset *token.FileSet, comment *ast.Comment) (*Attr, error) {
	text, ok := strings.CutPrefix(comment.Text, "//")
	if !ok {
		return nil, nil // block comments cannot be directives
	}
	rest, ok := strings.CutPrefix(text, DirectiveName+"(")
	if !ok {
		return nil, nil
	}
	pos := fset.Position(comment.Slash)
	args, ok := strings.CutSuffix(strings.TrimRight(rest, " \t"), ")")
	if !ok {
		return nil, fmt.Errorf("%s: unterminated %s directive", pos, DirectiveName)
	}
	// Anchor Pos at the first byte of the arguments.
	argsPos := pos
	argsPos.Column += len("//") + len(DirectiveName) + 1
	argsPos.Offset += len("//") + len(DirectiveName) + 1
	return &Attr{Name: DirectiveName, Args: args, Pos: argsPos}, nil
}
