package learn

import (
	"context"
	"sync"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

// AutoDeleteContext は一時出力テーブルの遅延削除を管理する。
// 出力テーブル名を指定せずに推定器を呼び出すと、生成された一時テーブルが
// ここに登録され、Close 時にまとめて削除される。
type AutoDeleteContext struct {
	idadb *ida.DataBase

	mu     sync.Mutex
	tables map[string]struct{}
}

// NewAutoDeleteContext は削除コンテキストを作成する
func NewAutoDeleteContext(idadb *ida.DataBase) *AutoDeleteContext {
	return &AutoDeleteContext{
		idadb:  idadb,
		tables: make(map[string]struct{}),
	}
}

// Add は削除対象のテーブルを登録する
func (a *AutoDeleteContext) Add(table string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tables[table] = struct{}{}
}

// Close は登録済みのテーブルをすべて削除する。
// 存在しないテーブルは無視される。
func (a *AutoDeleteContext) Close() error {
	a.mu.Lock()
	tables := make([]string, 0, len(a.tables))
	for t := range a.tables {
		tables = append(tables, t)
	}
	a.tables = make(map[string]struct{})
	a.mu.Unlock()

	var firstErr error
	for _, t := range tables {
		exists, err := a.idadb.ExistsTable(t)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !exists {
			continue
		}
		if err := a.idadb.DropTable(t); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type autoDeleteKey struct{}

// WithAutoDelete は削除コンテキストをcontextに結び付ける
func WithAutoDelete(ctx context.Context, a *AutoDeleteContext) context.Context {
	return context.WithValue(ctx, autoDeleteKey{}, a)
}

// autoDeleteFrom はcontextから削除コンテキストを取り出す。未設定ならnil。
func autoDeleteFrom(ctx context.Context) *AutoDeleteContext {
	a, _ := ctx.Value(autoDeleteKey{}).(*AutoDeleteContext)
	return a
}

// resolveOutTable は出力テーブル名を決定する。明示的な名前があればそれを使い、
// 既存の同名テーブルを削除する。名前がなければ一時テーブル名を生成して
// contextの削除コンテキストに登録する。
func resolveOutTable(ctx context.Context, idadb *ida.DataBase, outTable, attr string) (string, error) {
	if outTable != "" {
		exists, err := idadb.ExistsTableOrView(outTable)
		if err != nil {
			return "", err
		}
		if exists {
			if err := idadb.DropTable(outTable); err != nil {
				return "", err
			}
		}
		return outTable, nil
	}

	adc := autoDeleteFrom(ctx)
	if adc == nil {
		return "", errors.NewValidationError(attr,
			"requires an explicit output table name or an AutoDeleteContext bound to the context", nil)
	}
	name, err := idadb.ValidTableName()
	if err != nil {
		return "", err
	}
	adc.Add(name)
	return name, nil
}
