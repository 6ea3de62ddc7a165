//go:build !amd64 && !arm64

package kernel

// archSets is empty on architectures with no wide-kernel tier wired up
// yet; Active always falls back to scalarSet on these builds.
func archSets() []Set { return nil }
