// Package gen turns annotated enum declarations into Go source files that
// answer version questions about their values.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Annotated constants (//multi_version directives)
//	        ↓
//	   load.Enum (loaded declaration)
//	        ↓
//	   VariantMeta (parsed directives)
//	        ↓
//	   Enum, Variant, Properties (checked model)
//	        ↓
//	   Generated file ({label}_multiver.go)
//
// Directive arguments are scanned with go/scanner and parsed into a
// VariantMeta per comma-separated entry; one directive may carry several
// entries. VariantProperties folds the metas of a variant into a Properties
// bag, rejecting a repeated implemented or deprecated property with both
// declaration sites. NewEnum runs the whole front half
// and hands a checked model to the Generator, so generation itself cannot
// fail on user input.
//
// # Generated Output
//
// For an enum type Kind the generated file declares:
//
//   - ImplementedSince: version a value was introduced in
//   - DeprecatedSince: version a value was removed in, or nil
//   - ExistsIn: whether a value exists in a version
//   - ValueForVersion: the wire discriminant of a value in a version
//   - AllKindsAt: every value existing in a version, in declaration order
//
// The methods take *semver.Version from github.com/Masterminds/semver/v3
// and lean on the runtime package for memoized version and range parsing.
// Code is emitted as a Jennifer syntax tree rather than through string
// templates, so imports are tracked automatically and the output is always
// well formed.
//
// # Error Handling
//
// The package uses structured error types anchored to source positions:
//
//   - NotEnumError: annotated type is not an integer-backed enum
//   - ParameterizedError: annotated type declares type parameters
//   - AnnotationError: malformed directive, with the offending token
//   - DuplicateError: property declared twice, with both sites
//   - ConfigError: invalid configuration value
//   - GenerationError: file rendering or writing failed
//
// Diagnose flattens any of them into compiler-style file:line:column
// diagnostics; a DuplicateError yields the primary message and a related
// note pointing at the first occurrence.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithSuffix("_versions.go"),
//	    gen.WithTarget("./gen"),
//	)
//
// # Usage
//
//	enum, err := gen.NewEnum(cfg, loaded)
//	if err != nil {
//	    for _, d := range gen.Diagnose(err) {
//	        fmt.Println(d)
//	    }
//	    return err
//	}
//	err = gen.NewGenerator(cfg).Generate(ctx, enum)
package gen
