package learn

import (
	"context"

	"github.com/YuminosukeSato/idago/ida"
)

// modelCatalogView はデータベースが管理するモデル一覧のビュー
const modelCatalogView = "INZA.V_NZA_MODELS"

// ModelManager はデータベース内モデルの一覧・存在確認・削除を行う
type ModelManager struct {
	idadb *ida.DataBase
}

// NewModelManager はモデル管理オブジェクトを作成する
func NewModelManager(idadb *ida.DataBase) *ModelManager {
	return &ModelManager{idadb: idadb}
}

// ListModels はモデルカタログ上のデータフレームを返す
func (mm *ModelManager) ListModels() (*ida.DataFrame, error) {
	return ida.OpenDataFrame(mm.idadb, modelCatalogView)
}

// ModelExists はモデルが存在するかを調べる
func (mm *ModelManager) ModelExists(ctx context.Context, name string) (bool, error) {
	rf, err := mm.idadb.CallProcedure(ctx, "NZA..MODEL_EXISTS", "model="+name)
	if err != nil {
		return false, err
	}
	v, err := rf.Scalar()
	if err != nil {
		return false, err
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		return val == "t" || val == "true" || val == "TRUE" || val == "1", nil
	case int64:
		return val != 0, nil
	default:
		return false, nil
	}
}

// DropModel はモデルを削除する。存在しない場合は何もしない。
func (mm *ModelManager) DropModel(ctx context.Context, name string) error {
	exists, err := mm.ModelExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	_, err = mm.idadb.CallProcedure(ctx, "NZA..DROP_MODEL", "model="+name)
	return err
}
