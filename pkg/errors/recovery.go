package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError は回復されたパニックから作成されたエラーです。
// データベースドライバの値変換など、予期しないパニックをエラーとして扱うために使用します。
type PanicError struct {
	// PanicValue はpanic()に渡された元の値
	PanicValue interface{}

	// StackTrace はパニック発生時のスタックトレース
	StackTrace string

	// Operation はパニックが回復された場所
	Operation string
}

// Error はPanicErrorのerrorインターフェース実装です。
func (e *PanicError) Error() string {
	return fmt.Sprintf("idago: panic in %s: %v", e.Operation, e.PanicValue)
}

// String はスタックトレースを含む詳細情報を返します。
func (e *PanicError) String() string {
	return fmt.Sprintf("idago: panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError は新しいPanicErrorを作成します。
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover はdeferと組み合わせてパニックをエラーに変換するユーティリティです。
//
// 使用例:
//
//	func (db *DataBase) Query(sql string) (rf *ResultFrame, err error) {
//	    defer errors.Recover(&err, "Query")
//	    // ...
//	}
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		panicErr := NewPanicError(operation, r)

		if *err != nil {
			// 既存のエラーにパニック情報を付加する
			*err = fmt.Errorf("idago: panic in %s: %v (original error: %w)",
				operation, r, *err)
		} else {
			*err = panicErr
		}
	}
}

// SafeExecute は関数を実行し、パニックが発生した場合はエラーに変換します。
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
