package kernel

import "sync"

// Set bundles one implementation of each kernel family under a name, plus
// the feature bits that must be present on the host for this set to be
// selected.
type Set struct {
	Name  string
	Needs Features

	ScanString     func(b []byte) int
	FindStructural func(b []byte) uint64
	ParseInt       func(b []byte) (v int64, n int, ok bool)
}

var scalarSet = Set{
	Name:           "scalar",
	Needs:          0,
	ScanString:     scanStringScalar,
	FindStructural: findStructuralScalar,
	ParseInt:       parseIntScalar,
}

// wideSet builds a named candidate backed by the word-parallel kernels,
// gated on the given feature requirement.
func wideSet(name string, needs Features) Set {
	return Set{
		Name:           name,
		Needs:          needs,
		ScanString:     scanStringWide,
		FindStructural: findStructuralWide,
		ParseInt:       parseIntWide,
	}
}

var (
	dispatchOnce sync.Once
	active       Set
	usedFeatures Features
)

// Active returns the kernel set chosen for this process, probing CPU
// features and selecting on first use. Safe to call concurrently: multiple
// goroutines may race into the first call, but sync.Once's double-check
// guarantees initDispatch runs exactly once and every caller observes the
// same, fully-initialized Set -- the kernels themselves are pure, so even
// if two goroutines somehow computed the selection independently, the
// answer they'd converge on is identical.
func Active() Set {
	dispatchOnce.Do(initDispatch)
	return active
}

// FeaturesUsed returns the feature bitmask observed when the dispatch
// table was initialized. (Document.Stats reports the name of the Active
// set instead.)
func FeaturesUsed() Features {
	dispatchOnce.Do(initDispatch)
	return usedFeatures
}

func initDispatch() {
	usedFeatures = Probe()
	active = selectSet(usedFeatures, archSets())
}

// selectSet walks candidates in priority order (most specialized first)
// and returns the first whose Needs bits are all present in f. candidates
// need not include the scalar set; selectSet always falls back to it.
func selectSet(f Features, candidates []Set) Set {
	for _, s := range candidates {
		if f.Has(s.Needs) {
			return s
		}
	}
	return scalarSet
}

// All returns every kernel set compiled into this build, in priority
// order, scalar last. Property tests use this to force each variant and
// check it against the scalar reference regardless of the host's actual
// features.
func All() []Set {
	return append(append([]Set{}, archSets()...), scalarSet)
}
