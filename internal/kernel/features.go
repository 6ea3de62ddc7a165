// Package kernel implements the scan_string, find_structural, and parse_int
// kernel families the parser's inner loops drive, plus the dispatch table
// that selects one implementation of each at process startup.
//
// Every kernel has a scalar reference implementation, always compiled, and
// zero or more "wide" implementations. The scan_string and find_structural
// wide kernels process a machine word (8 bytes) at a time using
// word-parallel (SWAR) bit tricks; the parse_int wide kernel instead folds
// four digits per multiply-add. The SWAR helpers follow the classic haszero /
// hasvalue / hasless family documented in Sean Eron Anderson's "Bit
// Twiddling Hacks" and used for decades in libc string routines. This is
// the portable stand-in this rewrite uses in place of hand-written
// target-specific vector assembly: flier-goutil's own pkg/arena/art/simd
// backs its fastest tier with real AVX2 assembly reached through
// go:noescape externs, but those .s files were not part of this retrieval
// pack, and hand-authoring new x86/ARM assembly with no way to run the
// toolchain and verify it is not a responsible substitute. The dispatch
// contract -- a feature probe, a selection order, and an idempotent,
// concurrency-safe one-shot choice -- is kept faithful regardless; only the
// kernel bodies are pure Go.
package kernel

import "golang.org/x/sys/cpu"

// Features is a bitmask of SIMD and related capabilities detected on the
// host, laid out the way the original C library's json_cpu_feature enum
// groups them: x86-64 bits in the low half, ARM64 bits in the high half.
type Features uint32

const (
	FeatureSSE42 Features = 1 << iota
	FeatureAVX2
	FeatureAVX512F
	FeatureAVX512BW
	FeatureAVX512VL
	FeatureBMI1
	FeatureBMI2
	FeaturePOPCNT
	FeatureLZCNT

	FeatureNEON Features = 1 << (iota + 7) // leaves a gap matching the enum's 1<<16 start
	FeatureSVE
	FeatureSVE2
	FeatureDOTPROD
	FeatureSHA3
)

// FeatureAVX512 is the combination of AVX-512 subsets the wide kernels
// actually require (Foundation + Byte/Word ops); Has(FeatureAVX512) tests
// for both at once.
const FeatureAVX512 = FeatureAVX512F | FeatureAVX512BW

// Has reports whether every bit set in want is also set in f.
func (f Features) Has(want Features) bool { return f&want == want }

// String lists the set feature names, comma-separated, for diagnostics.
func (f Features) String() string {
	if f == 0 {
		return "none"
	}
	names := []struct {
		bit  Features
		name string
	}{
		{FeatureSSE42, "sse42"}, {FeatureAVX2, "avx2"},
		{FeatureAVX512F, "avx512f"}, {FeatureAVX512BW, "avx512bw"},
		{FeatureAVX512VL, "avx512vl"}, {FeatureBMI1, "bmi1"},
		{FeatureBMI2, "bmi2"}, {FeaturePOPCNT, "popcnt"},
		{FeatureLZCNT, "lzcnt"}, {FeatureNEON, "neon"},
		{FeatureSVE, "sve"}, {FeatureSVE2, "sve2"},
		{FeatureDOTPROD, "dotprod"}, {FeatureSHA3, "sha3"},
	}
	s := ""
	for _, n := range names {
		if f.Has(n.bit) {
			if s != "" {
				s += ","
			}
			s += n.name
		}
	}
	return s
}

// Probe returns the SIMD feature bitmask of the host CPU.
//
// This is the one external collaborator the spec calls out explicitly: a
// pure function from "the machine we're on" to a bitmask, backed here by
// golang.org/x/sys/cpu. Its result never changes during a process's
// lifetime, so it is safe to call from multiple goroutines and to cache.
//
// The enumeration mirrors the original C library's cpu_detect_features,
// which reads CPUID leaves 1, 7, and 0x80000001 directly on x86-64 and
// getauxval(AT_HWCAP)/sysctlbyname on ARM64; golang.org/x/sys/cpu already
// does that probing portably, so Probe adapts its fields into the same
// feature set rather than duplicating raw CPUID calls. Two bits the C
// enum defines -- LZCNT and SVE2 -- have no corresponding field in this
// module's golang.org/x/sys/cpu version and are always left clear; no
// kernel in this package currently gates on either.
func Probe() Features {
	var f Features

	if cpu.X86.HasSSE42 {
		f |= FeatureSSE42
	}
	if cpu.X86.HasAVX2 {
		f |= FeatureAVX2
	}
	if cpu.X86.HasAVX512F {
		f |= FeatureAVX512F
	}
	if cpu.X86.HasAVX512BW {
		f |= FeatureAVX512BW
	}
	if cpu.X86.HasAVX512VL {
		f |= FeatureAVX512VL
	}
	if cpu.X86.HasBMI1 {
		f |= FeatureBMI1
	}
	if cpu.X86.HasBMI2 {
		f |= FeatureBMI2
	}
	if cpu.X86.HasPOPCNT {
		f |= FeaturePOPCNT
	}

	if cpu.ARM64.HasASIMD {
		f |= FeatureNEON
	}
	if cpu.ARM64.HasSVE {
		f |= FeatureSVE
	}
	if cpu.ARM64.HasASIMDDP {
		f |= FeatureDOTPROD
	}
	if cpu.ARM64.HasSHA3 {
		f |= FeatureSHA3
	}

	return f
}
