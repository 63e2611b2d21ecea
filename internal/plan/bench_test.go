package plan

import (
	"context"
	"fmt"
	"testing"

	"github.com/agbru/convplan/internal/ring"
)

func BenchmarkCompile(b *testing.B) {
	for _, n := range []int{8, 64, 256} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			req := Request{Idx1: Identity(n), Idx2: Identity(n)}
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Compile(context.Background(), req, Options{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompileParallel(b *testing.B) {
	req := Request{Idx1: Identity(256), Idx2: Identity(256)}
	for _, depth := range []int{0, 1, 2, 3} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Compile(context.Background(), req, Options{ParallelDepth: depth}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkExecute(b *testing.B) {
	for _, n := range []int{8, 64, 256} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			p, err := Compile(context.Background(), Request{Idx1: Identity(n), Idx2: Identity(n)}, Options{})
			if err != nil {
				b.Fatal(err)
			}
			in := pseudoSeq(n, 42)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Execute(p, ring.Int64{}, in, in)
			}
		})
	}
}
