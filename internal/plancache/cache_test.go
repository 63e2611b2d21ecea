package plancache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/agbru/convplan/internal/plan"
)

func ident(n int) plan.Request {
	return plan.Request{Idx1: plan.Identity(n), Idx2: plan.Identity(n)}
}

func TestCacheHitAndMiss(t *testing.T) {
	t.Parallel()
	c := New(DefaultConfig())
	req := ident(4)

	if _, ok := c.Get(req); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	p1, err := c.GetOrCompile(context.Background(), req, plan.Options{})
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	p2, err := c.GetOrCompile(context.Background(), req, plan.Options{})
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if p1 != p2 {
		t.Error("second lookup should return the cached plan instance")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 2 || stats.Entries != 1 {
		t.Errorf("Stats = %+v, want 1 hit, 2 misses, 1 entry", stats)
	}
}

func TestCacheDistinguishesMasks(t *testing.T) {
	t.Parallel()
	c := New(DefaultConfig())
	base := ident(2)

	masked := base
	masked.Mask = []bool{true, false, true}

	pFull, err := c.GetOrCompile(context.Background(), base, plan.Options{})
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	pMasked, err := c.GetOrCompile(context.Background(), masked, plan.Options{})
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if pFull == pMasked {
		t.Error("different masks must not share a cache entry")
	}
	if len(pMasked.OutputDegrees()) != 2 {
		t.Errorf("masked plan outputs = %v, want 2 degrees", pMasked.OutputDegrees())
	}
}

func TestCacheEviction(t *testing.T) {
	t.Parallel()
	c := New(Config{MaxEntries: 2, Enabled: true})

	for _, n := range []int{1, 2, 4} {
		if _, err := c.GetOrCompile(context.Background(), ident(n), plan.Options{}); err != nil {
			t.Fatalf("GetOrCompile(n=%d) error = %v", n, err)
		}
	}

	stats := c.Stats()
	if stats.Entries != 2 {
		t.Errorf("Entries = %d, want 2", stats.Entries)
	}
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}

	// The oldest request (n=1) must have been evicted.
	if _, ok := c.Get(ident(1)); ok {
		t.Error("expected n=1 entry to be evicted")
	}
	if _, ok := c.Get(ident(4)); !ok {
		t.Error("expected n=4 entry to remain cached")
	}
}

func TestCacheDisabled(t *testing.T) {
	t.Parallel()
	c := New(Config{MaxEntries: 8, Enabled: false})
	req := ident(2)

	p1, err := c.GetOrCompile(context.Background(), req, plan.Options{})
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	p2, err := c.GetOrCompile(context.Background(), req, plan.Options{})
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if p1 == p2 {
		t.Error("disabled cache must compile fresh plans")
	}
	if stats := c.Stats(); stats.Entries != 0 {
		t.Errorf("disabled cache stored %d entries", stats.Entries)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	t.Parallel()
	c := New(DefaultConfig())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				n := 1 << (uint(g+i) % 4)
				if _, err := c.GetOrCompile(context.Background(), ident(n), plan.Options{}); err != nil {
					t.Errorf("GetOrCompile: %v", err)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if stats := c.Stats(); stats.Entries > 4 {
		t.Errorf("Entries = %d, want at most 4 distinct requests", stats.Entries)
	}
}

func TestCacheError(t *testing.T) {
	t.Parallel()
	c := New(DefaultConfig())
	bad := plan.Request{Idx1: []int{0, 1, 2}, Idx2: []int{0, 1, 2}}
	if _, err := c.GetOrCompile(context.Background(), bad, plan.Options{}); err == nil {
		t.Error("expected error for invalid request")
	}
	if stats := c.Stats(); stats.Entries != 0 {
		t.Error("failed compilations must not be cached")
	}
}

func BenchmarkCacheGetOrCompile(b *testing.B) {
	c := New(DefaultConfig())
	req := ident(64)
	ctx := context.Background()
	if _, err := c.GetOrCompile(ctx, req, plan.Options{}); err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.GetOrCompile(ctx, req, plan.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

func ExampleCache_GetOrCompile() {
	c := New(DefaultConfig())
	p, _ := c.GetOrCompile(context.Background(), ident(2), plan.Options{})
	fmt.Println(p.N(), len(p.OutputDegrees()))
	// Output: 2 3
}
