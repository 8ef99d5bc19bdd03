package protocol

import (
	"fmt"
	"sync"
	"testing"
)

func TestParallelMapVisitsEveryIndex(t *testing.T) {
	const n = 200
	var mu sync.Mutex
	seen := make(map[int]bool, n)

	err := parallelMap(n, func(i int) error {
		mu.Lock()
		seen[i] = true
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("parallelMap: %v", err)
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct indices visited, got %d", n, len(seen))
	}
}

func TestParallelMapPropagatesError(t *testing.T) {
	want := fmt.Errorf("boom")
	err := parallelMap(50, func(i int) error {
		if i == 25 {
			return want
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected an error to propagate")
	}
}

func TestParallelMapZero(t *testing.T) {
	called := false
	err := parallelMap(0, func(i int) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error for n=0, got %v", err)
	}
	if called {
		t.Error("f must not be called when n=0")
	}
}

func TestUnflattenRagged(t *testing.T) {
	rowLen := []int{3, 0, 2}
	// Flat indices 0,1,2 -> row 0; 3,4 -> row 2 (row 1 is empty and
	// contributes no indices).
	cases := []struct {
		idx     int
		wantRow int
		wantCol int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{2, 0, 2},
		{3, 2, 0},
		{4, 2, 1},
	}
	for _, c := range cases {
		row, col := unflattenRagged(c.idx, rowLen)
		if row != c.wantRow || col != c.wantCol {
			t.Errorf("unflattenRagged(%d): got (%d,%d), want (%d,%d)", c.idx, row, col, c.wantRow, c.wantCol)
		}
	}
}
