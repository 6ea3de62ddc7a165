//go:build arm64

package kernel

// archSets lists the arm64 selection order the spec mandates: SVE2, then
// SVE, then NEON, then (via the caller's fallback) scalar.
//
// golang.org/x/sys/cpu does not currently expose an SVE2 flag, so the SVE
// tier stands in for both; see features.go.
func archSets() []Set {
	return []Set{
		wideSet("sve", FeatureSVE),
		wideSet("neon", FeatureNEON),
	}
}
