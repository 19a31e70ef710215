// Package parallel は列単位の集約クエリを並列に発行するための補助を提供する。
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize はitems個の処理をCPUコア数までのワーカーに分割して実行する。
// fnは[start, end)の範囲を受け取り、全ワーカーの完了を待ってから戻る。
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	// 切り上げ除算
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold はitemsがthreshold以下なら逐次、超えれば並列で実行する。
// ゴルーチン起動のオーバーヘッドが見合わない小さな仕事向け。
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
