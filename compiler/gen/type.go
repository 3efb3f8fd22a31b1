package gen

import (
	"go/token"

	"github.com/multiver-io/multiver/compiler/load"
)

// Repr is the integer representation discriminant values are cast to in the
// generated code.
type Repr string

// DefaultRepr is the representation used when the underlying type is not
// one of the supported integer kinds.
const DefaultRepr Repr = "uint"

// reprKinds are the underlying integer kinds carried through to the
// generated casts as-is. Every other underlying type, uintptr included,
// quietly falls back to DefaultRepr.
var reprKinds = map[string]Repr{
	"int":    "int",
	"int8":   "int8",
	"int16":  "int16",
	"int32":  "int32",
	"int64":  "int64",
	"uint":   "uint",
	"uint8":  "uint8",
	"uint16": "uint16",
	"uint32": "uint32",
	"uint64": "uint64",
}

// ResolveRepr maps the name of an underlying type to the representation
// used in generated casts.
func ResolveRepr(name string) Repr {
	if r, ok := reprKinds[name]; ok {
		return r
	}
	return DefaultRepr
}

// The following types and their exported methods are used by the codegen
// to generate the assets.
type (
	// Enum represents one annotated enum in the generation graph and the
	// information it holds.
	Enum struct {
		*Config
		def *load.Enum
		// Name holds the enum type name.
		Name string
		// Pkg holds the name of the package the enum was declared in.
		Pkg string
		// Repr holds the discriminant representation of the enum.
		Repr Repr
		// Variants holds the enum constants in declaration order.
		Variants []*Variant
		variants map[string]*Variant
	}

	// Variant is one constant of an enum together with its folded version
	// properties.
	Variant struct {
		def *load.Variant
		// Name holds the constant name.
		Name string
		// Properties holds the folded directive properties.
		Properties *Properties
	}
)

// NewEnum builds the generation model for one loaded declaration. The
// declaration must be an enum without type parameters; the directives of
// every variant are parsed and folded here, so generation runs on a fully
// checked model.
func NewEnum(c *Config, def *load.Enum) (*Enum, error) {
	if def.Kind != load.KindEnum {
		return nil, NewNotEnumError(def.Name, string(def.Kind), def.Pos)
	}
	if len(def.TypeParams) > 0 {
		return nil, NewParameterizedError(def.Name, def.TypeParams, def.Pos)
	}
	e := &Enum{
		Config:   c.normalize(),
		def:      def,
		Name:     def.Name,
		Pkg:      def.Pkg,
		Repr:     ResolveRepr(def.Repr),
		Variants: make([]*Variant, 0, len(def.Variants)),
		variants: make(map[string]*Variant, len(def.Variants)),
	}
	for _, v := range def.Variants {
		props, err := VariantProperties(v)
		if err != nil {
			return nil, err
		}
		ev := &Variant{def: v, Name: v.Name, Properties: props}
		e.Variants = append(e.Variants, ev)
		e.variants[v.Name] = ev
	}
	return e, nil
}

// =============================================================================
// Enum methods
// =============================================================================

// Label returns the label name of the enum (snake_case). The generated file
// is named after it.
func (e Enum) Label() string {
	return snake(e.Name)
}

// Receiver returns the receiver name used by the generated methods.
func (e Enum) Receiver() string {
	return receiver(e.Name)
}

// AllFunc returns the name of the generated package-level function that
// lists the variants existing in a version, e.g. AllKindsAt for Kind.
func (e Enum) AllFunc() string {
	return "All" + plural(e.Name) + "At"
}

// Pos returns the position of the enum declaration in the source file.
func (e Enum) Pos() token.Position {
	return e.def.Pos
}

// Dir returns the directory of the package the enum was declared in.
func (e Enum) Dir() string {
	return e.def.Dir
}

// FileName returns the name of the generated file: the enum label followed
// by the configured suffix.
func (e Enum) FileName() string {
	return e.Label() + e.Suffix
}

// TargetDir returns the directory the generated file is written to: the
// configured target, or the directory of the enum's source package.
func (e Enum) TargetDir() string {
	if e.Target != "" {
		return e.Target
	}
	return e.def.Dir
}

// Variant returns the variant with the given name, or nil.
func (e Enum) Variant(name string) *Variant {
	return e.variants[name]
}

// Annotated reports whether any variant of the enum carries a directive.
func (e Enum) Annotated() bool {
	for _, v := range e.Variants {
		if v.Annotated() {
			return true
		}
	}
	return false
}

// =============================================================================
// Variant methods
// =============================================================================

// Annotated reports whether the variant carries any directive property.
func (v Variant) Annotated() bool {
	return v.Properties.Annotated()
}

// HasImplemented reports whether an implemented version was declared.
func (v Variant) HasImplemented() bool {
	return v.Properties.Implemented != nil
}

// HasDeprecated reports whether a deprecated version was declared.
func (v Variant) HasDeprecated() bool {
	return v.Properties.Deprecated != nil
}

// HasAlternates reports whether any alternative discriminant was declared.
func (v Variant) HasAlternates() bool {
	return len(v.Properties.Alternates) > 0
}

// Pos returns the position of the constant declaration in the source file.
func (v Variant) Pos() token.Position {
	return v.def.Pos
}
