package learn

import (
	"fmt"
	"strconv"
	"strings"
)

// Params はストアドプロシージャに渡すキー/値パラメータの列。
// 挿入順を保持するため、生成されるパラメータ文字列は決定的になる。
type Params struct {
	keys   []string
	values map[string]interface{}
}

// NewParams は空のパラメータ列を作成する
func NewParams() *Params {
	return &Params{values: make(map[string]interface{})}
}

// Set はパラメータを追加する。値がnil、空文字列、空リストの場合は無視される。
func (p *Params) Set(key string, value interface{}) *Params {
	switch v := value.(type) {
	case nil:
		return p
	case string:
		if v == "" {
			return p
		}
	case []string:
		if len(v) == 0 {
			return p
		}
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get は設定済みの値を返す
func (p *Params) Get(key string) (interface{}, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Map は設定済みパラメータのコピーをマップとして返す
func (p *Params) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(p.keys))
	for _, k := range p.keys {
		m[k] = p.values[k]
	}
	return m
}

// String はパラメータ列を「k=v,k=v」形式にマーシャルする。
// リスト値は「;」で連結される。
func (p *Params) String() string {
	parts := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		parts = append(parts, k+"="+paramValue(p.values[k]))
	}
	return strings.Join(parts, ",")
}

func paramValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ";")
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(v)
	}
}

// QuoteColumn は列名を二重引用符で囲む。既に引用済みの名前はそのまま返す。
// 「COL:nom」のような修飾付きの名前は、列名部分だけを引用する。
func QuoteColumn(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		return name
	}
	if ix := strings.Index(name, ":"); ix >= 0 {
		return `"` + name[:ix] + `"` + name[ix:]
	}
	return `"` + name + `"`
}

// QuoteColumns はリストの各要素に QuoteColumn を適用する
func QuoteColumns(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = QuoteColumn(n)
	}
	return out
}
