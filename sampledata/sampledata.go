// Package sampledata はチュートリアルとテスト用の組み込みデータセットを提供する。
//
// Fisher のあやめ (150行)、スイス26州の社会経済指標 (47行)、タイタニック号の
// 乗客リストの抜粋 (60行) が埋め込まれている。Load 系の関数でデータベースへ
// アップロードしてフレームとして使える。
package sampledata

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"strconv"

	"github.com/YuminosukeSato/idago/ida"
	"github.com/YuminosukeSato/idago/pkg/errors"
)

//go:embed iris.csv
var irisCSV []byte

//go:embed swiss.csv
var swissCSV []byte

//go:embed titanic.csv
var titanicCSV []byte

// Iris はあやめデータセットを結果フレームとして返す。
// 列は sepal_length, sepal_width, petal_length, petal_width, species。
func Iris() (*ida.ResultFrame, error) {
	return parseCSV(irisCSV, ',')
}

// Swiss は1888年頃のスイス各州の出生率と社会経済指標を返す。
// 列は province, fertility, agriculture, examination, education,
// catholic, infant_mortality。
func Swiss() (*ida.ResultFrame, error) {
	return parseCSV(swissCSV, ',')
}

// Titanic はタイタニック号の乗客リストの抜粋を返す。区切り文字は「|」で、
// 年齢や船室が不明の乗客はNULLになる。
func Titanic() (*ida.ResultFrame, error) {
	return parseCSV(titanicCSV, '|')
}

// LoadIris はあやめデータセットをテーブルにアップロードしてフレームを返す
func LoadIris(idadb *ida.DataBase, tablename string) (*ida.DataFrame, error) {
	rf, err := Iris()
	if err != nil {
		return nil, err
	}
	return idadb.AsDataFrame(rf, tablename, ida.UploadOptions{Clear: true})
}

// LoadSwiss はスイスデータセットをテーブルにアップロードしてフレームを返す
func LoadSwiss(idadb *ida.DataBase, tablename string) (*ida.DataFrame, error) {
	rf, err := Swiss()
	if err != nil {
		return nil, err
	}
	return idadb.AsDataFrame(rf, tablename, ida.UploadOptions{Clear: true})
}

// LoadTitanic はタイタニックデータセットをテーブルにアップロードしてフレームを
// 返す。passengerid 列がインデクサに設定される。
func LoadTitanic(idadb *ida.DataBase, tablename string) (*ida.DataFrame, error) {
	rf, err := Titanic()
	if err != nil {
		return nil, err
	}
	return idadb.AsDataFrame(rf, tablename, ida.UploadOptions{
		Clear:   true,
		Indexer: "passengerid",
	})
}

// parseCSV は埋め込みCSVを型推論しながら結果フレームへ変換する。
// 空のフィールドはNULL(nil)になる。
func parseCSV(data []byte, comma rune) (*ida.ResultFrame, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "sampledata: malformed embedded dataset")
	}
	if len(records) < 2 {
		return nil, errors.Wrap(errors.ErrEmptyData, "sampledata")
	}

	rf := &ida.ResultFrame{
		Columns: records[0],
		Data:    make([][]interface{}, 0, len(records)-1),
	}
	for _, record := range records[1:] {
		row := make([]interface{}, len(record))
		for i, field := range record {
			row[i] = inferValue(field)
		}
		rf.Data = append(rf.Data, row)
	}
	return rf, nil
}

func inferValue(field string) interface{} {
	if field == "" {
		return nil
	}
	if n, err := strconv.ParseInt(field, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return f
	}
	return field
}
