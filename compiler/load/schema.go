package load

import (
	"go/token"
)

// Kind classifies the shape of a loaded type declaration. The generator only
// accepts KindEnum; the remaining kinds exist so rejections can name what was
// actually found.
type Kind string

const (
	// KindEnum is a defined type with an integer underlying type. Its
	// constants are the enum variants.
	KindEnum Kind = "enum"
	// KindStruct is a defined struct type.
	KindStruct Kind = "struct"
	// KindInterface is a defined interface type.
	KindInterface Kind = "interface"
	// KindOther covers every remaining shape: string or float based types,
	// maps, slices, channels, functions.
	KindOther Kind = "other"
)

// Enum represents a type declaration that was loaded from a user package.
// Variants hold the type's constants in declaration order, each carrying the
// directive comments that were attached to its declaration.
type Enum struct {
	Name       string         `msgpack:"name"`
	Pkg        string         `msgpack:"pkg"`
	PkgPath    string         `msgpack:"pkg_path"`
	Dir        string         `msgpack:"dir"`
	Kind       Kind           `msgpack:"kind"`
	Repr       string         `msgpack:"repr,omitempty"`
	TypeParams []string       `msgpack:"type_params,omitempty"`
	Pos        token.Position `msgpack:"pos"`
	Variants   []*Variant     `msgpack:"variants,omitempty"`
}

// Variant is one constant of a loaded type.
type Variant struct {
	Name  string         `msgpack:"name"`
	Pos   token.Position `msgpack:"pos"`
	Attrs []*Attr        `msgpack:"attrs,omitempty"`
}

// Attr is one directive comment attached to a variant declaration, e.g.
//
//	//multi_version(implemented = "1.2.0")
//
// Name is the directive namespace and Args the raw text between the
// parentheses. Pos points at the first byte of Args, so parsers working on
// Args can anchor their diagnostics inside the original source file.
type Attr struct {
	Name string         `msgpack:"name"`
	Args string         `msgpack:"args"`
	Pos  token.Position `msgpack:"pos"`
}

// Directives returns the variant's directives in the given namespace, in
// source order.
func (v *Variant) Directives(namespace string) []*Attr {
	var attrs []*Attr
	for _, a := range v.Attrs {
		if a.Name == namespace {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

// HasDirective reports whether any variant of the enum carries a directive
// in the given namespace.
func (e *Enum) HasDirective(namespace string) bool {
	for _, v := range e.Variants {
		if len(v.Directives(namespace)) > 0 {
			return true
		}
	}
	return false
}

// Variant returns the variant with the given name, or nil.
func (e *Enum) Variant(name string) *Variant {
	for _, v := range e.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}
