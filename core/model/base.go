// Package model provides the shared foundation for in-database estimators.
// Estimators delegate training and prediction to stored procedures running
// inside the database; this package tracks their lifecycle on the client side.
package model

// EstimatorState はモデルの学習状態を表す
type EstimatorState int

const (
	// NotFitted はモデルが未学習の状態
	NotFitted EstimatorState = iota
	// Fitted はモデルが学習済みの状態（データベース上にモデルが存在する）
	Fitted
)

// BaseEstimator は全てのインデータベースモデルの基底となる構造体。
// 学習状態と、データベース上のモデル名を保持する。
type BaseEstimator struct {
	state     EstimatorState
	modelName string
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted はモデルを学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset はモデルを初期状態にリセットする。
// データベース上のモデルテーブルは削除しない。
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
	e.modelName = ""
}

// ModelName はデータベース上のモデル名を返す
func (e *BaseEstimator) ModelName() string {
	return e.modelName
}

// SetModelName はデータベース上のモデル名を設定する
func (e *BaseEstimator) SetModelName(name string) {
	e.modelName = name
}
