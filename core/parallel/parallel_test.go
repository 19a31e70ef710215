package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{"zero items", 0},
		{"single item", 1},
		{"fewer items than cores", 2},
		{"many items", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited int64
			Parallelize(tt.items, func(start, end int) {
				atomic.AddInt64(&visited, int64(end-start))
			})
			if visited != int64(tt.items) {
				t.Errorf("visited %d items, want %d", visited, tt.items)
			}
		})
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// しきい値以下は逐次処理で1回だけ呼ばれる
	calls := 0
	ParallelizeWithThreshold(5, 10, func(start, end int) {
		calls++
		if start != 0 || end != 5 {
			t.Errorf("sequential call got range [%d, %d), want [0, 5)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected exactly one sequential call, got %d", calls)
	}

	// しきい値超過は全アイテムを並列で処理する
	var visited int64
	ParallelizeWithThreshold(100, 10, func(start, end int) {
		atomic.AddInt64(&visited, int64(end-start))
	})
	if visited != 100 {
		t.Errorf("visited %d items, want 100", visited)
	}
}
