// Package version holds build identity constants.
package version

const (
	// AppName is the user-facing product name.
	AppName = "StackStage"
	// Current is the release version.
	Current = "2.0.0"
	// License is the distribution license identifier.
	License = "MIT"
)
