package gen

import (
	"errors"
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"

	"github.com/multiver-io/multiver"
	"github.com/multiver-io/multiver/compiler/load"
)

// VariantMeta is one parsed multi_version directive. The concrete type is
// ImplementedMeta, DeprecatedMeta or AlternativesMeta.
type VariantMeta interface {
	variantMeta()
}

// ImplementedMeta records the version a variant first shipped in.
type ImplementedMeta struct {
	Version string
	Pos     token.Position // keyword position in the source file
}

// DeprecatedMeta records the version a variant was removed in.
type DeprecatedMeta struct {
	Version string
	Pos     token.Position
}

// AlternativesMeta records discriminant overrides for version ranges.
type AlternativesMeta struct {
	Rules []AlternateRule
	Pos   token.Position
}

// AlternateRule maps one version range to a discriminant literal. Value
// holds the integer exactly as written so the generated code repeats it
// verbatim.
type AlternateRule struct {
	Range string
	Value string
	Pos   token.Position
}

func (*ImplementedMeta) variantMeta()  {}
func (*DeprecatedMeta) variantMeta()   {}
func (*AlternativesMeta) variantMeta() {}

// ParseAnnotations parses every multi_version directive attached to v. A
// directive carries a comma-separated list of entries; entries keep their
// source order within and across directives.
func ParseAnnotations(v *load.Variant) ([]VariantMeta, error) {
	attrs := v.Directives(load.DirectiveName)
	if len(attrs) == 0 {
		return nil, nil
	}
	metas := make([]VariantMeta, 0, len(attrs))
	for _, attr := range attrs {
		p := newAnnotationParser(v.Name, attr)
		parsed, err := p.parse()
		if err != nil {
			return nil, err
		}
		metas = append(metas, parsed...)
	}
	return metas, nil
}

// annotationParser parses the argument list of a single directive. The
// arguments are Go tokens, so they are scanned with go/scanner and offsets
// are mapped back onto the directive's position in the real source file.
type annotationParser struct {
	variant string
	attr    *load.Attr
	file    *token.File
	scan    scanner.Scanner
	tok     tokenInfo
}

// tokenInfo is the current token with its byte offset into the argument
// text.
type tokenInfo struct {
	off int
	tok token.Token
	lit string
}

func newAnnotationParser(variant string, attr *load.Attr) *annotationParser {
	fset := token.NewFileSet()
	p := &annotationParser{
		variant: variant,
		attr:    attr,
		file:    fset.AddFile("", fset.Base(), len(attr.Args)),
	}
	p.scan.Init(p.file, []byte(attr.Args), nil, 0)
	p.next()
	return p
}

// next advances to the next token, skipping the semicolons the scanner
// inserts at line ends. Directive arguments never contain real semicolons.
func (p *annotationParser) next() {
	for {
		pos, tok, lit := p.scan.Scan()
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		p.tok = tokenInfo{off: p.file.Offset(pos), tok: tok, lit: lit}
		return
	}
}

// pos maps a byte offset within the argument text onto the source file.
// Directives occupy a single line, so columns shift by the same amount as
// offsets.
func (p *annotationParser) pos(off int) token.Position {
	pos := p.attr.Pos
	pos.Column += off
	pos.Offset += off
	return pos
}

func (p *annotationParser) errorf(off int, format string, args ...any) *AnnotationError {
	return NewAnnotationError(p.variant, fmt.Sprintf(format, args...), p.pos(off))
}

// parse reads the directive's arguments as a comma-separated entry list. A
// trailing comma is allowed, and an empty list yields no entries.
func (p *annotationParser) parse() ([]VariantMeta, error) {
	var metas []VariantMeta
	for p.tok.tok != token.EOF {
		meta, err := p.parseEntry()
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
		if p.tok.tok == token.COMMA {
			p.next()
			continue
		}
		if p.tok.tok != token.EOF {
			return nil, p.errorf(p.tok.off, "expected ',' or end of directive, found %s", tokenLabel(p.tok))
		}
	}
	return metas, nil
}

// parseEntry dispatches on the entry keyword.
func (p *annotationParser) parseEntry() (VariantMeta, error) {
	keyword := p.tok
	if keyword.tok != token.IDENT {
		return nil, p.errorf(keyword.off, "expected implemented, deprecated or alternative_version, found %s", tokenLabel(keyword))
	}
	p.next()
	switch keyword.lit {
	case "implemented", "deprecated":
		return p.parseVersionClause(keyword)
	case "alternative_version":
		return p.parseAlternatives(keyword)
	default:
		return nil, p.errorf(keyword.off, "expected implemented, deprecated or alternative_version, found %s", keyword.lit)
	}
}

// parseVersionClause parses `implemented = "1.2.3"` or its deprecated
// counterpart, after the keyword was consumed.
func (p *annotationParser) parseVersionClause(keyword tokenInfo) (VariantMeta, error) {
	if p.tok.tok != token.ASSIGN {
		return nil, p.errorf(p.tok.off, "expected '=' after %s, found %s", keyword.lit, tokenLabel(p.tok))
	}
	p.next()
	version, err := p.parseVersionString()
	if err != nil {
		return nil, err
	}
	pos := p.pos(keyword.off)
	if keyword.lit == "implemented" {
		return &ImplementedMeta{Version: version, Pos: pos}, nil
	}
	return &DeprecatedMeta{Version: version, Pos: pos}, nil
}

// parseVersionString consumes a string literal and checks it parses as a
// semantic version, so the failure points at the directive instead of the
// generated file.
func (p *annotationParser) parseVersionString() (string, error) {
	lit := p.tok
	if lit.tok != token.STRING {
		return "", p.errorf(lit.off, "expected version string, found %s", tokenLabel(lit))
	}
	p.next()
	s, err := strconv.Unquote(lit.lit)
	if err != nil {
		return "", p.errorf(lit.off, "malformed string literal %s", lit.lit)
	}
	if _, err := multiver.Version(s); err != nil {
		if cause := errors.Unwrap(err); cause != nil {
			err = cause
		}
		return "", &AnnotationError{
			Variant: p.variant,
			Message: fmt.Sprintf("invalid version %q", s),
			Pos:     p.pos(lit.off),
			Cause:   err,
		}
	}
	return s, nil
}

// parseAlternatives parses `alternative_version("RANGE", VALUE, ...)` after
// the keyword was consumed. The argument list is flat, read as pairs; a
// trailing comma is allowed, and an empty list is legal and contributes no
// override rules.
func (p *annotationParser) parseAlternatives(keyword tokenInfo) (VariantMeta, error) {
	if p.tok.tok != token.LPAREN {
		return nil, p.errorf(p.tok.off, "expected '(' after %s, found %s", keyword.lit, tokenLabel(p.tok))
	}
	p.next()
	meta := &AlternativesMeta{Pos: p.pos(keyword.off)}
	for p.tok.tok != token.RPAREN && p.tok.tok != token.EOF {
		rule, err := p.parseAlternateRule()
		if err != nil {
			return nil, err
		}
		meta.Rules = append(meta.Rules, rule)
		if p.tok.tok != token.COMMA {
			break
		}
		p.next()
	}
	if p.tok.tok != token.RPAREN {
		return nil, p.errorf(p.tok.off, "expected ',' or ')' in alternative_version, found %s", tokenLabel(p.tok))
	}
	p.next()
	return meta, nil
}

// parseAlternateRule parses one `"RANGE", VALUE` pair.
func (p *annotationParser) parseAlternateRule() (AlternateRule, error) {
	lit := p.tok
	if lit.tok != token.STRING {
		return AlternateRule{}, p.errorf(lit.off, "expected version range string, found %s", tokenLabel(lit))
	}
	p.next()
	rng, err := strconv.Unquote(lit.lit)
	if err != nil {
		return AlternateRule{}, p.errorf(lit.off, "malformed string literal %s", lit.lit)
	}
	pos := p.pos(lit.off)
	if _, err := multiver.Range(rng); err != nil {
		if cause := errors.Unwrap(err); cause != nil {
			err = cause
		}
		return AlternateRule{}, &AnnotationError{
			Variant: p.variant,
			Message: fmt.Sprintf("invalid version range %q", rng),
			Pos:     pos,
			Cause:   err,
		}
	}
	if p.tok.tok != token.COMMA {
		return AlternateRule{}, p.errorf(p.tok.off, "expected ',' between range and value, found %s", tokenLabel(p.tok))
	}
	p.next()
	value := p.tok
	if value.tok != token.INT {
		return AlternateRule{}, p.errorf(value.off, "expected integer literal after range %q, found %s", rng, tokenLabel(value))
	}
	p.next()
	return AlternateRule{Range: rng, Value: value.lit, Pos: pos}, nil
}

// tokenLabel renders a token for error messages.
func tokenLabel(tok tokenInfo) string {
	switch {
	case tok.tok == token.EOF:
		return "end of directive"
	case tok.lit != "":
		return tok.lit
	default:
		return fmt.Sprintf("%q", tok.tok.String())
	}
}
