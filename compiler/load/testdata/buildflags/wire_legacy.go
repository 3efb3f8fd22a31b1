//go:build legacy

package buildflags

const (
	//multi_version(deprecated = "1.0.0")
	FrameLegacy Frame = 255
)
