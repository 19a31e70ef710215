package ida

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/idago/pkg/errors"
)

// ResultFrame はデータベースから取得した結果セットを保持するローカルフレーム。
// DataFrameと異なり、全ての行をメモリ上に持つ。
type ResultFrame struct {
	// Columns は結果セットの列名（取得順）
	Columns []string

	// Data は行単位のセル値。driverが返した型をそのまま保持する。
	Data [][]interface{}

	// ExecutionTime はクエリの実行にかかった時間
	ExecutionTime time.Duration
}

// Shape は (行数, 列数) を返す
func (rf *ResultFrame) Shape() (rows, cols int) {
	return len(rf.Data), len(rf.Columns)
}

// Empty は結果セットが空かどうかを返す
func (rf *ResultFrame) Empty() bool {
	return len(rf.Data) == 0
}

// ColumnIndex は列名に対応する位置を返す。見つからない場合は-1。
func (rf *ResultFrame) ColumnIndex(name string) int {
	for i, c := range rf.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Column は指定列の全セルを返す
func (rf *ResultFrame) Column(name string) ([]interface{}, error) {
	idx := rf.ColumnIndex(name)
	if idx < 0 {
		return nil, errors.NewDataFrameError("Column", "", fmt.Sprintf("column %q not found", name))
	}
	values := make([]interface{}, len(rf.Data))
	for i, row := range rf.Data {
		values[i] = row[idx]
	}
	return values, nil
}

// FloatColumn は指定列をfloat64スライスとして返す。
// NULLはNaNではなくエラーとして扱う。
func (rf *ResultFrame) FloatColumn(name string) ([]float64, error) {
	idx := rf.ColumnIndex(name)
	if idx < 0 {
		return nil, errors.NewDataFrameError("FloatColumn", "", fmt.Sprintf("column %q not found", name))
	}
	values := make([]float64, len(rf.Data))
	for i, row := range rf.Data {
		f, err := toFloat(row[idx])
		if err != nil {
			return nil, errors.Wrapf(err, "idago: FloatColumn: row %d of column %q", i, name)
		}
		values[i] = f
	}
	return values, nil
}

// StringColumn は指定列を文字列スライスとして返す
func (rf *ResultFrame) StringColumn(name string) ([]string, error) {
	idx := rf.ColumnIndex(name)
	if idx < 0 {
		return nil, errors.NewDataFrameError("StringColumn", "", fmt.Sprintf("column %q not found", name))
	}
	values := make([]string, len(rf.Data))
	for i, row := range rf.Data {
		values[i] = cellString(row[idx])
	}
	return values, nil
}

// Scalar は1行1列の結果セットの唯一のセルを返す
func (rf *ResultFrame) Scalar() (interface{}, error) {
	if len(rf.Data) == 0 || len(rf.Columns) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	return rf.Data[0][0], nil
}

// AsMatrix は全列を数値化してgonumの密行列に変換する。
// 数値化できないセルがあるとエラーを返す。
func (rf *ResultFrame) AsMatrix() (*mat.Dense, error) {
	rows, cols := rf.Shape()
	if rows == 0 || cols == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	m := mat.NewDense(rows, cols, nil)
	for i, row := range rf.Data {
		for j, cell := range row {
			f, err := toFloat(cell)
			if err != nil {
				return nil, errors.Wrapf(err, "idago: AsMatrix: cell (%d, %q)", i, rf.Columns[j])
			}
			m.Set(i, j, f)
		}
	}
	return m, nil
}

// String は結果セットを桁揃えしたテキスト表として描画する
func (rf *ResultFrame) String() string {
	if len(rf.Columns) == 0 {
		return "(empty result)"
	}
	widths := make([]int, len(rf.Columns))
	for i, c := range rf.Columns {
		widths[i] = len(c)
	}
	rendered := make([][]string, len(rf.Data))
	for i, row := range rf.Data {
		cells := make([]string, len(row))
		for j, cell := range row {
			s := cellString(cell)
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
			cells[j] = s
		}
		rendered[i] = cells
	}

	var b strings.Builder
	for i, c := range rf.Columns {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[i], c)
	}
	b.WriteByte('\n')
	for _, cells := range rendered {
		for j, s := range cells {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[j], s)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case []byte:
		return strconv.ParseFloat(string(x), 64)
	case string:
		return strconv.ParseFloat(x, 64)
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, errors.New("NULL cell is not numeric")
	default:
		return 0, errors.Newf("cell of type %T is not numeric", v)
	}
}
