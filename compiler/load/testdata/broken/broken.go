// Package broken carries a malformed directive for loader failure tests.
package broken

// State tracks session lifecycle.
type State uint8

const (
	//multi_version(implemented = "1.0.0"
	StateInit State = iota
	StateOpen
)
