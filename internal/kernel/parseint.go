package kernel

import "math"

// maxIntDigits bounds how many digits parse_int will consume, to avoid
// int64 overflow; the parser's number grammar falls back to the host's
// float parser when a number's digit run is longer than this.
const maxIntDigits = 19

// maxInt64Mag and minInt64Mag are the unsigned magnitudes of math.MaxInt64
// and math.MinInt64, used to detect overflow while accumulating a run of
// digits as an unsigned value (so -9223372036854775808 does not have to
// be special-cased as "one more than the largest positive int64").
const (
	maxInt64Mag = uint64(math.MaxInt64)
	minInt64Mag = maxInt64Mag + 1
)

// parseIntScalar parses an optional '-' followed by ASCII digits, and
// returns the decoded signed value, the number of bytes consumed (sign
// included), and whether the value fits in an int64 without overflow. It
// returns (0, 0, true) if there are no digits to consume, whether or not
// a '-' preceded them. On overflow (the case strtoll plus errno ==
// ERANGE covers in the original C implementation) ok is false and the
// caller must fall back to float parsing rather than trust v, which would
// otherwise have silently wrapped.
func parseIntScalar(b []byte) (v int64, n int, ok bool) {
	i := 0
	neg := false
	if i < len(b) && b[i] == '-' {
		neg = true
		i++
	}

	start := i
	var mag uint64
	overflow := false
	for i < len(b) && i-start < maxIntDigits && b[i] >= '0' && b[i] <= '9' {
		d := uint64(b[i] - '0')
		if mag > (math.MaxUint64-d)/10 {
			overflow = true
		} else {
			mag = mag*10 + d
		}
		i++
	}

	if i == start {
		return 0, 0, true
	}
	ok = !overflow && fitsInt64(mag, neg)
	return signedFromMagnitude(mag, neg, !ok), i, ok
}

// parseIntWide is the "vector" tier: it accumulates four digits per
// multiply-add instead of one, which removes three of every four
// per-digit branches on the hot path while remaining exactly the same
// arithmetic, and the same overflow detection, as the scalar reference.
func parseIntWide(b []byte) (v int64, n int, ok bool) {
	i := 0
	neg := false
	if i < len(b) && b[i] == '-' {
		neg = true
		i++
	}

	start := i
	end := len(b)
	var mag uint64
	overflow := false

	for i+4 <= end && i-start+4 <= maxIntDigits && isDigitRun4(b[i:i+4]) {
		d0 := uint64(b[i] - '0')
		d1 := uint64(b[i+1] - '0')
		d2 := uint64(b[i+2] - '0')
		d3 := uint64(b[i+3] - '0')
		chunk := d0*1000 + d1*100 + d2*10 + d3
		if mag > (math.MaxUint64-chunk)/10000 {
			overflow = true
		} else {
			mag = mag*10000 + chunk
		}
		i += 4
	}
	for i < end && i-start < maxIntDigits && b[i] >= '0' && b[i] <= '9' {
		d := uint64(b[i] - '0')
		if mag > (math.MaxUint64-d)/10 {
			overflow = true
		} else {
			mag = mag*10 + d
		}
		i++
	}

	if i == start {
		return 0, 0, true
	}
	ok = !overflow && fitsInt64(mag, neg)
	return signedFromMagnitude(mag, neg, !ok), i, ok
}

// fitsInt64 reports whether an unsigned magnitude, with the given sign,
// is representable as an int64. Negative magnitudes may legally be one
// larger than positive ones, since int64's range is asymmetric
// ([-9223372036854775808, 9223372036854775807]).
func fitsInt64(mag uint64, neg bool) bool {
	if neg {
		return mag <= minInt64Mag
	}
	return mag <= maxInt64Mag
}

// signedFromMagnitude converts an unsigned digit-run magnitude and sign
// into an int64. The result is meaningless when overflow is true or
// fitsInt64 would report false; callers must check ok before using it.
func signedFromMagnitude(mag uint64, neg bool, overflow bool) int64 {
	if overflow {
		return 0
	}
	if neg {
		if mag == minInt64Mag {
			return math.MinInt64
		}
		return -int64(mag)
	}
	return int64(mag)
}

func isDigitRun4(b []byte) bool {
	return b[0] >= '0' && b[0] <= '9' &&
		b[1] >= '0' && b[1] <= '9' &&
		b[2] >= '0' && b[2] <= '9' &&
		b[3] >= '0' && b[3] <= '9'
}
