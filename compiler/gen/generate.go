package gen

import (
	"context"

	"github.com/dave/jennifer/jen"
)

// Generator builds the version metadata file of annotated enums.
type Generator struct {
	cfg *Config
}

// NewGenerator creates a new Generator. A nil config gets the defaults.
func NewGenerator(cfg *Config) *Generator {
	return &Generator{cfg: cfg.normalize()}
}

// Generate renders the file of every enum and writes it next to its source
// package, or into the configured target directory.
func (g *Generator) Generate(ctx context.Context, enums ...*Enum) error {
	return NewWriter(g.cfg).WriteAll(ctx, enums...)
}

// File builds the in-memory representation of the generated file for e.
// It performs no I/O, so callers can inspect the result before writing.
func (g *Generator) File(e *Enum) *jen.File {
	f := newFile(e)
	genImplementedSince(f, e)
	genDeprecatedSince(f, e)
	genExistsIn(f, e)
	genValueForVersion(f, e)
	genAllAt(f, e)
	return f
}

// newFile creates a Jennifer file for the enum's package with the header
// comment and stable import names. Registering the import names keeps the
// runtime and semver packages unaliased in the rendered import block.
func newFile(e *Enum) *jen.File {
	f := jen.NewFilePathName(e.def.PkgPath, e.Pkg)
	if e.Header != "" {
		f.HeaderComment(e.Header)
	}
	f.ImportName(e.Runtime, "multiver")
	f.ImportName(SemverPkg, "semver")
	return f
}

// genImplementedSince generates the ImplementedSince method: a switch over
// the variants that declared an implemented version. Variants that never
// declared one existed since the beginning, so they report the zero version.
func genImplementedSince(f *jen.File, e *Enum) {
	recv := e.Receiver()
	annotated := make([]*Variant, 0, len(e.Variants))
	for _, v := range e.Variants {
		if v.HasImplemented() {
			annotated = append(annotated, v)
		}
	}
	f.Commentf("ImplementedSince returns the version the %s value was introduced in.", e.Name)
	f.Comment("Values declared without an implemented version report the zero version.")
	f.Func().Params(jen.Id(recv).Id(e.Name)).Id("ImplementedSince").Params().Op("*").Qual(SemverPkg, "Version").BlockFunc(func(grp *jen.Group) {
		if len(annotated) == 0 {
			grp.Return(zeroVersion(e))
			return
		}
		grp.Switch(jen.Id(recv)).BlockFunc(func(sw *jen.Group) {
			for _, v := range annotated {
				sw.Case(jen.Id(v.Name)).Block(
					jen.Return(mustVersion(e, v.Properties.Implemented.Version)),
				)
			}
			sw.Default().Block(jen.Return(zeroVersion(e)))
		})
	})
}

// genDeprecatedSince generates the DeprecatedSince method. Variants that
// were never deprecated report nil.
func genDeprecatedSince(f *jen.File, e *Enum) {
	recv := e.Receiver()
	annotated := make([]*Variant, 0, len(e.Variants))
	for _, v := range e.Variants {
		if v.HasDeprecated() {
			annotated = append(annotated, v)
		}
	}
	f.Commentf("DeprecatedSince returns the version the %s value was removed in,", e.Name)
	f.Comment("or nil if it was never deprecated.")
	f.Func().Params(jen.Id(recv).Id(e.Name)).Id("DeprecatedSince").Params().Op("*").Qual(SemverPkg, "Version").BlockFunc(func(grp *jen.Group) {
		if len(annotated) == 0 {
			grp.Return(jen.Nil())
			return
		}
		grp.Switch(jen.Id(recv)).BlockFunc(func(sw *jen.Group) {
			for _, v := range annotated {
				sw.Case(jen.Id(v.Name)).Block(
					jen.Return(mustVersion(e, v.Properties.Deprecated.Version)),
				)
			}
			sw.Default().Block(jen.Return(jen.Nil()))
		})
	})
}

// genExistsIn generates the ExistsIn method. A value exists in every
// version from its implemented version up to, but not including, its
// deprecated version.
func genExistsIn(f *jen.File, e *Enum) {
	recv := e.Receiver()
	f.Commentf("ExistsIn reports whether the %s value exists in the given version:", e.Name)
	f.Comment("introduced at or before it, and not yet removed.")
	f.Func().Params(jen.Id(recv).Id(e.Name)).Id("ExistsIn").Params(
		jen.Id("version").Op("*").Qual(SemverPkg, "Version"),
	).Bool().Block(
		jen.If(jen.Id("version").Dot("LessThan").Call(jen.Id(recv).Dot("ImplementedSince").Call())).Block(
			jen.Return(jen.False()),
		),
		jen.If(
			jen.Id("deprecated").Op(":=").Id(recv).Dot("DeprecatedSince").Call(),
			jen.Id("deprecated").Op("!=").Nil().Op("&&").Op("!").Id("version").Dot("LessThan").Call(jen.Id("deprecated")),
		).Block(
			jen.Return(jen.False()),
		),
		jen.Return(jen.True()),
	)
}

// genValueForVersion generates the ValueForVersion method. Variants with
// alternative discriminants test their ranges in declaration order and the
// first match wins; everything else uses the declared constant value.
func genValueForVersion(f *jen.File, e *Enum) {
	recv := e.Receiver()
	annotated := make([]*Variant, 0, len(e.Variants))
	for _, v := range e.Variants {
		if v.HasAlternates() {
			annotated = append(annotated, v)
		}
	}
	f.Commentf("ValueForVersion returns the discriminant the %s value uses on the wire", e.Name)
	f.Comment("in the given version. The second result reports whether the value exists in it.")
	f.Func().Params(jen.Id(recv).Id(e.Name)).Id("ValueForVersion").Params(
		jen.Id("version").Op("*").Qual(SemverPkg, "Version"),
	).Params(reprType(e.Repr), jen.Bool()).BlockFunc(func(grp *jen.Group) {
		grp.If(jen.Op("!").Id(recv).Dot("ExistsIn").Call(jen.Id("version"))).Block(
			jen.Return(jen.Lit(0), jen.False()),
		)
		if len(annotated) > 0 {
			grp.Switch(jen.Id(recv)).BlockFunc(func(sw *jen.Group) {
				for _, v := range annotated {
					sw.Case(jen.Id(v.Name)).BlockFunc(func(cs *jen.Group) {
						for _, rule := range v.Properties.Alternates {
							cs.If(mustRange(e, rule.Range).Dot("Check").Call(jen.Id("version"))).Block(
								jen.Return(reprCast(e.Repr, jen.Id(rule.Value)), jen.True()),
							)
						}
					})
				}
			})
		}
		grp.Return(reprCast(e.Repr, jen.Id(recv)), jen.True())
	})
}

// genAllAt generates the package-level function listing the values that
// exist in a version, in declaration order.
func genAllAt(f *jen.File, e *Enum) {
	f.Commentf("%s returns the %s values that exist in the given version, in", e.AllFunc(), e.Name)
	f.Comment("declaration order. Values listed in excluded are skipped regardless of version.")
	f.Func().Id(e.AllFunc()).Params(
		jen.Id("version").Op("*").Qual(SemverPkg, "Version"),
		jen.Id("excluded").Op("...").Id(e.Name),
	).Index().Id(e.Name).BlockFunc(func(grp *jen.Group) {
		grp.Id("all").Op(":=").Index(jen.Op("...")).Id(e.Name).ValuesFunc(func(vals *jen.Group) {
			for _, v := range e.Variants {
				vals.Id(v.Name)
			}
		})
		grp.Id("values").Op(":=").Make(jen.Index().Id(e.Name), jen.Lit(0), jen.Len(jen.Id("all")))
		grp.For(jen.List(jen.Id("_"), jen.Id("value")).Op(":=").Range().Id("all")).Block(
			jen.If(jen.Qual("slices", "Contains").Call(jen.Id("excluded"), jen.Id("value"))).Block(
				jen.Continue(),
			),
			jen.If(jen.Op("!").Id("value").Dot("ExistsIn").Call(jen.Id("version"))).Block(
				jen.Continue(),
			),
			jen.Id("values").Op("=").Append(jen.Id("values"), jen.Id("value")),
		)
		grp.Return(jen.Id("values"))
	})
}

// mustVersion emits a parse of a version literal through the runtime cache.
func mustVersion(e *Enum, version string) *jen.Statement {
	return jen.Qual(e.Runtime, "MustVersion").Call(jen.Lit(version))
}

// mustRange emits a parse of a range literal through the runtime cache.
func mustRange(e *Enum, rng string) *jen.Statement {
	return jen.Qual(e.Runtime, "MustRange").Call(jen.Lit(rng))
}

// zeroVersion emits a reference to the shared zero version.
func zeroVersion(e *Enum) *jen.Statement {
	return jen.Qual(e.Runtime, "ZeroVersion").Call()
}

// reprType emits the representation type of the enum.
func reprType(r Repr) *jen.Statement {
	return jen.Id(string(r))
}

// reprCast emits a conversion of code to the representation type. Alternate
// values pass through as written, so hex and binary literals survive.
func reprCast(r Repr, code jen.Code) *jen.Statement {
	return jen.Id(string(r)).Call(code)
}
