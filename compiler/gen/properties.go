package gen

import (
	"go/token"

	"github.com/multiver-io/multiver/compiler/load"
)

// VersionLit is a version literal taken from a directive, together with the
// position of the property that declared it.
type VersionLit struct {
	Version string
	Pos     token.Position
}

// Properties is the folded view of every directive attached to one variant.
// Implemented and Deprecated appear at most once each; alternates accumulate
// in source order across directives.
type Properties struct {
	Implemented *VersionLit
	Deprecated  *VersionLit
	Alternates  []AlternateRule
}

// VariantProperties parses the variant's directives and folds them into a
// property bag. A repeated implemented or deprecated property yields a
// DuplicateError carrying both declaration sites.
func VariantProperties(v *load.Variant) (*Properties, error) {
	metas, err := ParseAnnotations(v)
	if err != nil {
		return nil, err
	}
	props := &Properties{}
	for _, meta := range metas {
		switch m := meta.(type) {
		case *ImplementedMeta:
			if props.Implemented != nil {
				return nil, NewDuplicateError(v.Name, "implemented", props.Implemented.Pos, m.Pos)
			}
			props.Implemented = &VersionLit{Version: m.Version, Pos: m.Pos}
		case *DeprecatedMeta:
			if props.Deprecated != nil {
				return nil, NewDuplicateError(v.Name, "deprecated", props.Deprecated.Pos, m.Pos)
			}
			props.Deprecated = &VersionLit{Version: m.Version, Pos: m.Pos}
		case *AlternativesMeta:
			props.Alternates = append(props.Alternates, m.Rules...)
		}
	}
	return props, nil
}

// Annotated reports whether any property was declared.
func (p *Properties) Annotated() bool {
	return p.Implemented != nil || p.Deprecated != nil || len(p.Alternates) > 0
}
