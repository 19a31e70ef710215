// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// ibmdbpy/nzpyidaの例外クラス階層にインスパイアされており、構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("idago-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、DataConversionWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// DataConversionWarning はデータの型が暗黙的に変換された場合に発生する警告です。
// 例えば文字列カラムを数値統計の対象から除外した場合など。
type DataConversionWarning struct {
	FromType string
	ToType   string
	Reason   string
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("data converted from %s to %s. Reason: %s", w.FromType, w.ToType, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("from_type", w.FromType).
		Str("to_type", w.ToType).
		Str("reason", w.Reason).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(from, to, reason string) *DataConversionWarning {
	return &DataConversionWarning{FromType: from, ToType: to, Reason: reason}
}

// ===========================================================================
//
//	構造化されたエラー型（ibmdbpy例外クラス対応）
//
// ===========================================================================

// DataBaseError はデータベース接続・カタログ・SQL実行に関するエラーです。
// ibmdbpyのIdaDataBaseErrorに対応します。
type DataBaseError struct {
	Op      string
	Message string
	Query   string // 失敗したSQL（あれば）
	Err     error
}

func (e *DataBaseError) Error() string {
	if e.Query != "" {
		return fmt.Sprintf("idago: %s: %s [query: %s]", e.Op, e.Message, e.Query)
	}
	return fmt.Sprintf("idago: %s: %s", e.Op, e.Message)
}

func (e *DataBaseError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DataBaseError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("message", e.Message).
		Str("query", e.Query).
		Str("type", "DataBaseError")
}

// NewDataBaseError は新しいDataBaseErrorを作成し、スタックトレースを付与します。
func NewDataBaseError(op, message string) error {
	err := &DataBaseError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NewQueryError はSQL実行失敗を表すDataBaseErrorを作成します。
func NewQueryError(op, query string, cause error) error {
	err := &DataBaseError{Op: op, Message: "query execution failed", Query: query, Err: cause}
	return errors.WithStack(err)
}

// DataFrameError はIdaDataFrame/IdaSeriesの操作に関するエラーです。
type DataFrameError struct {
	Op      string
	Frame   string // 対象のテーブル/ビュー名
	Message string
}

func (e *DataFrameError) Error() string {
	if e.Frame != "" {
		return fmt.Sprintf("idago: %s: %s: %s", e.Op, e.Frame, e.Message)
	}
	return fmt.Sprintf("idago: %s: %s", e.Op, e.Message)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DataFrameError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("frame", e.Frame).
		Str("message", e.Message).
		Str("type", "DataFrameError")
}

// NewDataFrameError は新しいDataFrameErrorを作成し、スタックトレースを付与します。
func NewDataFrameError(op, frame, message string) error {
	err := &DataFrameError{Op: op, Frame: frame, Message: message}
	return errors.WithStack(err)
}

// PrimaryKeyError は主キー・インデクサ列に関するエラーです。
// 行単位の選択（Loc）やID列の追加で、一意な識別列が要求された場合に発生します。
type PrimaryKeyError struct {
	Table   string
	Column  string
	Message string
}

func (e *PrimaryKeyError) Error() string {
	return fmt.Sprintf("idago: primary key error on %q (column %q): %s", e.Table, e.Column, e.Message)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PrimaryKeyError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("table", e.Table).
		Str("column", e.Column).
		Str("message", e.Message).
		Str("type", "PrimaryKeyError")
}

// NewPrimaryKeyError は新しいPrimaryKeyErrorを作成し、スタックトレースを付与します。
func NewPrimaryKeyError(table, column, message string) error {
	err := &PrimaryKeyError{Table: table, Column: column, Message: message}
	return errors.WithStack(err)
}

// GeoDataFrameError はジオメトリ列の選択や空間関数の適用に関するエラーです。
type GeoDataFrameError struct {
	Op       string
	Column   string
	Function string // 対象のINZA関数名（あれば）
	Message  string
}

func (e *GeoDataFrameError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("idago: %s: %s on column %q: %s", e.Op, e.Function, e.Column, e.Message)
	}
	return fmt.Sprintf("idago: %s: column %q: %s", e.Op, e.Column, e.Message)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *GeoDataFrameError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("column", e.Column).
		Str("function", e.Function).
		Str("message", e.Message).
		Str("type", "GeoDataFrameError")
}

// NewGeoDataFrameError は新しいGeoDataFrameErrorを作成し、スタックトレースを付与します。
func NewGeoDataFrameError(op, column, message string) error {
	err := &GeoDataFrameError{Op: op, Column: column, Message: message}
	return errors.WithStack(err)
}

// NewGeoFunctionError は空間関数の適用失敗を表すGeoDataFrameErrorを作成します。
func NewGeoFunctionError(op, function, column, message string) error {
	err := &GeoDataFrameError{Op: op, Column: column, Function: function, Message: message}
	return errors.WithStack(err)
}

// ModelError はインデータベース機械学習モデルに関する一般的なエラーです。
// KMeansError/NaiveBayesErrorなどのアルゴリズム固有エラーの基盤になります。
type ModelError struct {
	Algorithm string // 例: "KMeans", "NaiveBayes", "ARule"
	Model     string // データベース上のモデル名
	Op        string // "fit", "predict", "score" など
	Message   string
	Err       error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("idago: %s: %s(%s): %s: %v", e.Op, e.Algorithm, e.Model, e.Message, e.Err)
	}
	return fmt.Sprintf("idago: %s: %s(%s): %s", e.Op, e.Algorithm, e.Model, e.Message)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("algorithm", e.Algorithm).
		Str("model", e.Model).
		Str("operation", e.Op).
		Str("message", e.Message).
		Str("type", "ModelError")
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(algorithm, model, op, message string) error {
	err := &ModelError{Algorithm: algorithm, Model: model, Op: op, Message: message}
	return errors.WithStack(err)
}

// NewKMeansError はKMeansアルゴリズムのエラーを作成します。
func NewKMeansError(model, op, message string) error {
	return NewModelError("KMeans", model, op, message)
}

// NewAssociationRulesError はアソシエーションルールのエラーを作成します。
func NewAssociationRulesError(model, op, message string) error {
	return NewModelError("ARule", model, op, message)
}

// NewNaiveBayesError はナイーブベイズのエラーを作成します。
func NewNaiveBayesError(model, op, message string) error {
	return NewModelError("NaiveBayes", model, op, message)
}

// NotFittedError はモデルが未学習の状態で `Predict` や `Score` を呼び出した場合のエラーです。
// インデータベースモデルの場合、モデルがデータベース上に存在しないことを意味します。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("idago: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("idago: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、分位点に0〜1の範囲外の数値を渡した場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("idago: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrNotImplemented は機能が未実装の場合のエラーです。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrClosed はクローズ済みの接続を使用した場合のエラーです。
	ErrClosed = New("connection is closed")

	// ErrNoIndexer はインデクサ列が設定されていない場合のエラーです。
	ErrNoIndexer = New("no indexer column set")

	// ErrNotSupported は現在のSQL方言でサポートされない操作のエラーです。
	ErrNotSupported = New("operation not supported by this dialect")
)
