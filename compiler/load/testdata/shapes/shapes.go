// Package shapes declares non-enum shapes for loader classification tests.
package shapes

// Header is a struct, not an enum.
type Header struct {
	Name  string
	Value string
}

// Codec is an interface, not an enum.
type Codec interface {
	Encode([]byte) ([]byte, error)
}

// Mode is string-based; its constants carry no integer discriminants.
type Mode string

const (
	//multi_version(implemented = "1.1.0")
	ModeStrict Mode = "strict"
	ModeLoose  Mode = "loose"
)

// Pair is parameterized.
type Pair[T any] struct {
	Left, Right T
}

// Level is defined on another local type; its underlying type is uint16.
type Level Severity

// Severity is the base type Level chains through.
type Severity uint16

const (
	LevelLow Level = iota
	LevelHigh
)

// Word is integer-based but not one of the fixed-width kinds.
type Word uintptr

const (
	WordA Word = iota
	WordB
)
