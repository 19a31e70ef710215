// Package learn はデータベース内機械学習のscikit-learn風ラッパーを提供する。
//
// 各推定器は学習データをクライアントへ転送せず、NZA.. ストアドプロシージャ
// (KMEANS, DECTREE, GLM など) の呼び出しに変換する。モデル本体はデータベース側に
// 名前付きオブジェクトとして保存され、Fit / Predict / Score / Describe の
// 各操作はすべてSQLとして実行される。
//
//	clusterer := learn.NewKMeans(idadb, "CUSTOMER_SEGMENTS")
//	out, err := clusterer.Fit(ctx, df, learn.KMeansParams{
//		IDColumn:     "ID",
//		TargetColumn: "SEGMENT",
//		K:            5,
//	})
//
// 出力テーブル名を省略した場合、一時テーブルが生成され AutoDeleteContext に
// 登録される。AutoDeleteContext が設定されていない場合はエラーになる。
package learn
