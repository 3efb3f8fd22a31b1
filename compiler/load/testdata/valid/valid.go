// Package valid declares annotated wire enums for loader tests.
package valid

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

	//multi_version(implemented = "1.4.0",)
	KindCheckpoint // trailing comma inside the directive is allowed

	//multi_version(implemented = "1.6.0")
	//multi_version(alternative_version(">=1.6.0, <1.8.0", 21))
	KindDelta
)

// Op is unannotated; every variant carries default metadata.
type Op int

const (
	OpGet Op = iota
	OpPut
	OpDelete
)

// flag is unexported and unannotated; the loader still inventories it.
type flag uint

const flagNone flag = 0
