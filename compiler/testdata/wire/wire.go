// Package wire declares the record kinds of the replication protocol.
package wire

// Kind discriminates record payloads on the wire.
type Kind uint8

const (
	// KindHello is the handshake record, present since the first release.
	KindHello Kind = iota

	//multi_version(implemented = "1.2.0")
	KindMemberCount

	//multi_version(implemented = "1.2.0", deprecated = "2.0.0")
	KindLeaseHint

	//multi_version(alternative_version(">=1.0.0, <1.5.0", 7, ">=1.5.0", 9))
	KindTrailer
)

// Header is the fixed preamble every record starts with.
type Header struct {
	Kind   Kind
	Length uint32
}
