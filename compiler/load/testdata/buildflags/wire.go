// Package buildflags exercises build-constrained variant sets.
package buildflags

// Frame identifies framing strategies on the wire.
type Frame uint8

const (
	FrameRaw Frame = iota
	//multi_version(implemented = "1.3.0")
	FrameChunked
)
