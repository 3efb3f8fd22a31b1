package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrNotEnum indicates the annotated type is not an enum.
	ErrNotEnum = errors.New("multiver: not an enum")
	// ErrParameterized indicates the annotated type declares type parameters.
	ErrParameterized = errors.New("multiver: parameterized type")
	// ErrInvalidAnnotation indicates a malformed multi_version directive.
	ErrInvalidAnnotation = errors.New("multiver: invalid annotation")
	// ErrDuplicateAnnotation indicates a property was declared twice.
	ErrDuplicateAnnotation = errors.New("multiver: duplicate annotation")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("multiver: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("multiver: code generation failed")
)

// NotEnumError reports a declaration whose shape cannot carry version
// metadata: only defined types with an integer underlying type have
// constants that act as variants.
type NotEnumError struct {
	Type string // type name
	Kind string // offending shape: "struct", "interface", "other"
	Pos  token.Position
}

// Error implements the error interface.
func (e *NotEnumError) Error() string {
	var b strings.Builder
	b.WriteString("multiver: ")
	b.WriteString(e.Type)
	if e.Kind != "" && e.Kind != "other" {
		b.WriteString(" is a ")
		b.WriteString(e.Kind)
		b.WriteString(",")
	} else {
		b.WriteString(" is")
	}
	b.WriteString(" not an enum: only defined types with an integer underlying type are supported")
	return b.String()
}

// Is reports whether the target matches the sentinel error for NotEnumError.
func (e *NotEnumError) Is(target error) bool {
	return target == ErrNotEnum
}

// NewNotEnumError creates a new NotEnumError.
func NewNotEnumError(typeName, kind string, pos token.Position) *NotEnumError {
	return &NotEnumError{
		Type: typeName,
		Kind: kind,
		Pos:  pos,
	}
}

// ParameterizedError reports a declaration with type parameters. Every
// instantiation would need its own lookup tables, so the generated mapping
// would be unbounded.
type ParameterizedError struct {
	Type   string   // type name
	Params []string // type parameter names
	Pos    token.Position
}

// Error implements the error interface.
func (e *ParameterizedError) Error() string {
	var b strings.Builder
	b.WriteString("multiver: ")
	b.WriteString(e.Type)
	b.WriteString(" declares type parameters")
	if len(e.Params) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Params, ", "))
	}
	b.WriteString(": the generated version tables would be unbounded")
	return b.String()
}

// Is reports whether the target matches the sentinel error for ParameterizedError.
func (e *ParameterizedError) Is(target error) bool {
	return target == ErrParameterized
}

// NewParameterizedError creates a new ParameterizedError.
func NewParameterizedError(typeName string, params []string, pos token.Position) *ParameterizedError {
	return &ParameterizedError{
		Type:   typeName,
		Params: params,
		Pos:    pos,
	}
}

// AnnotationError reports a malformed multi_version directive. Pos points
// inside the directive at the offending token.
type AnnotationError struct {
	Variant string // constant the directive is attached to
	Message string
	Pos     token.Position
	Cause   error
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	var b strings.Builder
	b.WriteString("multiver: invalid annotation")
	if e.Variant != "" {
		b.WriteString(" on ")
		b.WriteString(e.Variant)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *AnnotationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for AnnotationError.
func (e *AnnotationError) Is(target error) bool {
	return target == ErrInvalidAnnotation
}

// NewAnnotationError creates a new AnnotationError.
func NewAnnotationError(variant, message string, pos token.Position) *AnnotationError {
	return &AnnotationError{
		Variant: variant,
		Message: message,
		Pos:     pos,
	}
}

// DuplicateError reports a property that may appear at most once per variant
// but was declared twice. Both declaration sites are carried so diagnostics
// can point at each.
type DuplicateError struct {
	Variant  string // constant the directives are attached to
	Property string // duplicated property keyword
	First    token.Position
	Second   token.Position
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "multiver: found multiple occurrences of multi_version(%s)", e.Property)
	if e.Variant != "" {
		b.WriteString(" on ")
		b.WriteString(e.Variant)
	}
	if e.First.IsValid() {
		fmt.Fprintf(&b, " (first one at %s)", e.First)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for DuplicateError.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateAnnotation
}

// NewDuplicateError creates a new DuplicateError.
func NewDuplicateError(variant, property string, first, second token.Position) *DuplicateError {
	return &DuplicateError{
		Variant:  variant,
		Property: property,
		First:    first,
		Second:   second,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("multiver: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("multiver: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Type    string // enum the failure belongs to
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("multiver: generation error")
	if e.Type != "" {
		b.WriteString(" for ")
		b.WriteString(e.Type)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(typeName, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Type:    typeName,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsNotEnumError reports whether the error is a NotEnumError.
func IsNotEnumError(err error) bool {
	var notEnumErr *NotEnumError
	return errors.As(err, &notEnumErr)
}

// IsParameterizedError reports whether the error is a ParameterizedError.
func IsParameterizedError(err error) bool {
	var paramErr *ParameterizedError
	return errors.As(err, &paramErr)
}

// IsAnnotationError reports whether the error is an AnnotationError.
func IsAnnotationError(err error) bool {
	var annErr *AnnotationError
	return errors.As(err, &annErr)
}

// IsDuplicateError reports whether the error is a DuplicateError.
func IsDuplicateError(err error) bool {
	var dupErr *DuplicateError
	return errors.As(err, &dupErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// Diagnostic is one compiler-style message anchored to a source position.
type Diagnostic struct {
	Pos     token.Position
	Message string
}

// String renders the diagnostic in file:line:column form.
func (d Diagnostic) String() string {
	if !d.Pos.IsValid() {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Diagnose flattens err into source-anchored diagnostics: the primary
// message first, related notes after it. Errors without position
// information yield a single diagnostic with a zero position.
func Diagnose(err error) []Diagnostic {
	var (
		notEnumErr *NotEnumError
		paramErr   *ParameterizedError
		annErr     *AnnotationError
		dupErr     *DuplicateError
	)
	switch {
	case errors.As(err, &dupErr):
		return []Diagnostic{
			{
				Pos:     dupErr.Second,
				Message: fmt.Sprintf("found multiple occurrences of multi_version(%s)", dupErr.Property),
			},
			{
				Pos:     dupErr.First,
				Message: "first one here",
			},
		}
	case errors.As(err, &annErr):
		return []Diagnostic{{Pos: annErr.Pos, Message: annErr.Message}}
	case errors.As(err, &notEnumErr):
		return []Diagnostic{{
			Pos:     notEnumErr.Pos,
			Message: strings.TrimPrefix(notEnumErr.Error(), "multiver: "),
		}}
	case errors.As(err, &paramErr):
		return []Diagnostic{{
			Pos:     paramErr.Pos,
			Message: strings.TrimPrefix(paramErr.Error(), "multiver: "),
		}}
	default:
		return []Diagnostic{{Message: err.Error()}}
	}
}
