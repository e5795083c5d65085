package inbetween

import (
	"testing"

	"github.com/tphakala/go-cel-inbetween/internal/testutil"
)

// BenchmarkGenerateSequential benchmarks sequential frame rendering.
func BenchmarkGenerateSequential(b *testing.B) {
	benchmarkGenerate(b, false)
}

// BenchmarkGenerateParallel benchmarks parallel frame rendering.
func BenchmarkGenerateParallel(b *testing.B) {
	benchmarkGenerate(b, true)
}

func benchmarkGenerate(b *testing.B, parallel bool) {
	b.Helper()

	const (
		size   = 256
		frames = 8
	)

	keyA := testutil.Blob(size, size, 120, 128, 20)
	keyB := testutil.Blob(size, size, 136, 124, 20)

	cfg := DefaultConfig()
	cfg.Frames = frames
	cfg.EnableParallel = parallel

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		if _, err := Generate(keyA, keyB, cfg, nil); err != nil {
			b.Fatalf("Generate failed: %v", err)
		}
	}
}
