package kernel_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenadoc/cdom/internal/kernel"
)

// corpus returns a mix of hand-picked and randomly generated byte slices,
// covering short/long/empty inputs and boundary offsets around multiples
// of 4 and 8 bytes (where the wide kernels' word/tail split happens).
func corpus() [][]byte {
	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte(`hello`),
		[]byte(`say "hi"`),
		[]byte(`a\b`),
		[]byte("\x01\x02\x03"),
		[]byte(`{"a":1,"b":[true,null,{"c":3.5}]}`),
		[]byte(`0123456789012345678901234567890123456789`),
		[]byte(`-1234567890123456789`),
		[]byte(`12345678`),
		[]byte(`123456789`),
		[]byte(`9223372036854775807`),  // math.MaxInt64, fits exactly
		[]byte(`9223372036854775808`),  // math.MaxInt64 + 1, overflows
		[]byte(`9999999999999999999`),  // 19 nines, overflows
		[]byte(`-9223372036854775808`), // math.MinInt64, fits exactly
	}

	rng := rand.New(rand.NewSource(1))
	alphabet := []byte(`{}[]:,"\` + "0123456789-abc \t\n\x01\x1f")
	for n := 0; n < 40; n++ {
		length := rng.Intn(130)
		buf := make([]byte, length)
		for i := range buf {
			buf[i] = alphabet[rng.Intn(len(alphabet))]
		}
		cases = append(cases, buf)
	}

	return cases
}

func TestScanStringKernelsAgree(t *testing.T) {
	scalar := findSet(t, "scalar")

	for _, s := range kernel.All() {
		s := s
		for _, in := range corpus() {
			in := in
			t.Run(fmt.Sprintf("%s/%q", s.Name, truncate(in)), func(t *testing.T) {
				want := scalar.ScanString(in)
				got := s.ScanString(in)
				assert.Equal(t, want, got, "ScanString(%q)", in)
			})
		}
	}
}

func TestFindStructuralKernelsAgree(t *testing.T) {
	scalar := findSet(t, "scalar")

	for _, s := range kernel.All() {
		s := s
		for _, in := range corpus() {
			in := in
			t.Run(fmt.Sprintf("%s/%q", s.Name, truncate(in)), func(t *testing.T) {
				want := scalar.FindStructural(in)
				got := s.FindStructural(in)
				assert.Equal(t, want, got, "FindStructural(%q)", in)
			})
		}
	}
}

func TestParseIntKernelsAgree(t *testing.T) {
	scalar := findSet(t, "scalar")

	for _, s := range kernel.All() {
		s := s
		for _, in := range corpus() {
			in := in
			t.Run(fmt.Sprintf("%s/%q", s.Name, truncate(in)), func(t *testing.T) {
				wantV, wantN, wantOK := scalar.ParseInt(in)
				gotV, gotN, gotOK := s.ParseInt(in)
				assert.Equal(t, wantV, gotV, "ParseInt(%q) value", in)
				assert.Equal(t, wantN, gotN, "ParseInt(%q) consumed", in)
				assert.Equal(t, wantOK, gotOK, "ParseInt(%q) ok", in)
			})
		}
	}
}

func TestParseIntDetectsOverflow(t *testing.T) {
	for _, s := range kernel.All() {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			v, n, ok := s.ParseInt([]byte(`9223372036854775807`))
			assert.Equal(t, int64(9223372036854775807), v)
			assert.Equal(t, 19, n)
			assert.True(t, ok, "max int64 literal must not be reported as overflow")

			_, n, ok = s.ParseInt([]byte(`9223372036854775808`))
			assert.Equal(t, 19, n)
			assert.False(t, ok, "max int64 + 1 must be reported as overflow")

			_, n, ok = s.ParseInt([]byte(`9999999999999999999`))
			assert.Equal(t, 19, n)
			assert.False(t, ok, "19-nines literal must be reported as overflow")

			v, n, ok = s.ParseInt([]byte(`-9223372036854775808`))
			assert.Equal(t, int64(-9223372036854775808), v)
			assert.Equal(t, 20, n)
			assert.True(t, ok, "min int64 literal must not be reported as overflow")
		})
	}
}

func TestFeaturesHasAndString(t *testing.T) {
	f := kernel.FeatureSSE42 | kernel.FeatureAVX2
	assert.True(t, f.Has(kernel.FeatureSSE42))
	assert.False(t, f.Has(kernel.FeatureAVX512F))
	assert.Contains(t, f.String(), "sse42")
	assert.Contains(t, f.String(), "avx2")
	assert.Equal(t, "none", kernel.Features(0).String())
}

func TestFeatureAVX512RequiresBothSubsets(t *testing.T) {
	assert.False(t, kernel.FeatureAVX512F.Has(kernel.FeatureAVX512))
	assert.True(t, (kernel.FeatureAVX512F | kernel.FeatureAVX512BW).Has(kernel.FeatureAVX512))
}

func TestActiveIsIdempotentAndConcurrencySafe(t *testing.T) {
	done := make(chan kernel.Set, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- kernel.Active() }()
	}

	first := <-done
	for i := 1; i < 8; i++ {
		got := <-done
		assert.Equal(t, first.Name, got.Name)
	}
}

func findSet(t *testing.T, name string) kernel.Set {
	t.Helper()
	for _, s := range kernel.All() {
		if s.Name == name {
			return s
		}
	}
	require.Failf(t, "no such kernel set", "name=%s", name)
	return kernel.Set{}
}

func truncate(b []byte) string {
	if len(b) > 16 {
		return string(b[:16]) + "..."
	}
	return string(b)
}
