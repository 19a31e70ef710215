package learn

// ColumnSpec は多くの学習プロシージャに共通する列定義オプション。
// ゼロ値のフィールドはパラメータとして送信されない。
type ColumnSpec struct {
	// IDColumn は行を一意に識別する列。空の場合はフレームのインデクサが使われる。
	IDColumn string

	// TargetColumn は予測対象の列
	TargetColumn string

	// InColumns は特殊な性質を持つ列のリスト。各要素は「COL:nom」「COL:ignore」の
	// ような修飾を付けられる。
	InColumns []string

	// ColDefType は列の既定の型 (nom / cont)
	ColDefType string

	// ColDefRole は列の既定の役割 (input / ignore)
	ColDefRole string

	// ColPropertiesTable は列の性質を格納したテーブル
	ColPropertiesTable string
}

func (cs ColumnSpec) apply(p *Params) {
	p.Set("id", QuoteColumn(cs.IDColumn))
	p.Set("target", QuoteColumn(cs.TargetColumn))
	p.Set("incolumn", QuoteColumns(cs.InColumns))
	p.Set("coldeftype", cs.ColDefType)
	p.Set("coldefrole", cs.ColDefRole)
	p.Set("colpropertiestable", cs.ColPropertiesTable)
}

// PredictOptions は予測呼び出しの共通オプション
type PredictOptions struct {
	// OutTable は予測結果の出力テーブル。空の場合は一時テーブルが生成される。
	OutTable string

	// IDColumn は行を一意に識別する列。空の場合はフレームのインデクサが使われる。
	IDColumn string
}
