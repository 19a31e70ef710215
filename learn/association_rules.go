package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// AssociationRules は相関ルールマイニング。トランザクションデータから
// 頻出アイテム集合とルールを抽出し、レコメンド予測に使う。
type AssociationRules struct {
	PredictiveModel
}

// NewAssociationRules はルール学習器を作成する
func NewAssociationRules(idadb *ida.DataBase, modelName string) *AssociationRules {
	ar := &AssociationRules{PredictiveModel: newPredictiveModel(idadb, modelName)}
	ar.fitProc = "ARULE"
	ar.predictProc = "PREDICT_ARULE"
	ar.hasPrintProc = true
	return ar
}

// AssociationRulesParams は学習パラメータ
type AssociationRulesParams struct {
	// TransactionIDColumn はトランザクションを識別する列。ゼロ値は tid。
	TransactionIDColumn string

	// ItemColumn はアイテムを表す列。ゼロ値は item。
	ItemColumn string

	// ByColumn はルール集合を分けるグループ列
	ByColumn string

	// Level は抽出の並列度レベル。ゼロ値は1。
	Level int

	// MaxSetSize はアイテム集合の最大サイズ。ゼロ値は6。
	MaxSetSize int

	// Support は最小支持度。ゼロ値はSupportTypeがpercentのとき5.0。
	Support float64

	// SupportType は支持度の単位 (percent, absolute)。ゼロ値は percent。
	SupportType string

	// Confidence は最小確信度。ゼロ値は0.5。
	Confidence float64
}

func (ap *AssociationRulesParams) defaults() {
	if ap.TransactionIDColumn == "" {
		ap.TransactionIDColumn = "tid"
	}
	if ap.ItemColumn == "" {
		ap.ItemColumn = "item"
	}
	if ap.Level == 0 {
		ap.Level = 1
	}
	if ap.MaxSetSize == 0 {
		ap.MaxSetSize = 6
	}
	if ap.SupportType == "" {
		ap.SupportType = "percent"
	}
	if ap.Support == 0 && ap.SupportType == "percent" {
		ap.Support = 5.0
	}
	if ap.Confidence == 0 {
		ap.Confidence = 0.5
	}
}

// Fit はトランザクションデータからルール集合を学習する。ID列は不要。
func (ar *AssociationRules) Fit(ctx context.Context, in *ida.DataFrame, opts AssociationRulesParams) error {
	opts.defaults()
	params := NewParams().
		Set("tid", QuoteColumn(opts.TransactionIDColumn)).
		Set("item", QuoteColumn(opts.ItemColumn)).
		Set("by", QuoteColumn(opts.ByColumn)).
		Set("lvl", opts.Level).
		Set("maxsetsize", opts.MaxSetSize)
	if opts.Support > 0 {
		params.Set("support", opts.Support)
	}
	params.
		Set("supporttype", opts.SupportType).
		Set("confidence", opts.Confidence)
	return ar.fit(ctx, in, params, false)
}

// ARulePredictOptions は予測オプション。Min/Maxの各しきい値で適用する
// ルールを絞り込める。
type ARulePredictOptions struct {
	// OutTable は予測結果の出力テーブル。空の場合は一時テーブルが生成される。
	OutTable string

	// TransactionIDColumn はトランザクションを識別する列。ゼロ値は tid。
	TransactionIDColumn string

	// ItemColumn はアイテムを表す列。ゼロ値は item。
	ItemColumn string

	// ByColumn はルール集合を分けるグループ列
	ByColumn string

	// ScoringType は予測方式 (recommend, exclusiveRecommend, match)。
	// ゼロ値は exclusiveRecommend。
	ScoringType string

	// NameMapColumn / ItemNameColumn / ItemNameMappedColumn は
	// アイテム名マッピングの指定
	NameMapColumn        string
	ItemNameColumn       string
	ItemNameMappedColumn string

	// MinSize / MaxSize は適用するルールのアイテム集合サイズ範囲。
	// ゼロ値は1と64。
	MinSize int
	MaxSize int

	// MinSupport / MaxSupport は適用するルールの支持度範囲
	MinSupport float64
	MaxSupport float64

	// MinConfidence / MaxConfidence は適用するルールの確信度範囲
	MinConfidence float64
	MaxConfidence float64

	// MinLift / MaxLift は適用するルールのリフト値範囲
	MinLift float64
	MaxLift float64
}

func (ao *ARulePredictOptions) defaults() {
	if ao.TransactionIDColumn == "" {
		ao.TransactionIDColumn = "tid"
	}
	if ao.ItemColumn == "" {
		ao.ItemColumn = "item"
	}
	if ao.ScoringType == "" {
		ao.ScoringType = "exclusiveRecommend"
	}
	if ao.MinSize == 0 {
		ao.MinSize = 1
	}
	if ao.MaxSize == 0 {
		ao.MaxSize = 64
	}
	if ao.MaxSupport == 0 {
		ao.MaxSupport = 1.0
	}
}

// Predict は学習済みルールをトランザクションデータに適用する
func (ar *AssociationRules) Predict(ctx context.Context, in *ida.DataFrame, opts ARulePredictOptions) (*ida.DataFrame, error) {
	opts.defaults()
	params := NewParams().
		Set("tid", QuoteColumn(opts.TransactionIDColumn)).
		Set("item", QuoteColumn(opts.ItemColumn)).
		Set("by", QuoteColumn(opts.ByColumn)).
		Set("type", opts.ScoringType).
		Set("namemap", opts.NameMapColumn).
		Set("itemname", opts.ItemNameColumn).
		Set("itemnamemapped", opts.ItemNameMappedColumn).
		Set("minsize", opts.MinSize).
		Set("maxsize", opts.MaxSize).
		Set("minsupp", opts.MinSupport).
		Set("maxsupp", opts.MaxSupport)
	if opts.MinConfidence > 0 {
		params.Set("minconf", opts.MinConfidence)
	}
	if opts.MaxConfidence > 0 {
		params.Set("maxconf", opts.MaxConfidence)
	}
	if opts.MinLift > 0 {
		params.Set("minlift", opts.MinLift)
	}
	if opts.MaxLift > 0 {
		params.Set("maxlift", opts.MaxLift)
	}
	return ar.predict(ctx, in, params, opts.OutTable)
}
