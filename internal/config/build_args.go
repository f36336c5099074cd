package config

import "fmt"

// ModuleName is the name of the module as specified in go.mod.
const ModuleName = "github/chapool/go-disperse"

// The following vars are automatically injected via -ldflags.
var (
	Commit    = "< 40 chars git commit hash via ldflags >"
	BuildDate = "1970-01-01T00:00:00+00:00"
)

// GetFormattedBuildArgs returns "<ModuleName> @ <Commit> (<BuildDate>)"
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
