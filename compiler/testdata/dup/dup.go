// Package dup carries a duplicated property for aggregation failure tests.
package dup

// Stage tracks pipeline progress.
type Stage int

const (
	//multi_version(implemented = "1.0.0")
	//multi_version(implemented = "1.1.0")
	StageDecode Stage = iota
	StageApply
)
