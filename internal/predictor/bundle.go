package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/dmitryikh/leaves"
	"go.uber.org/zap"
)

// Classifier 二分类器接口（外部训练产物，内部结构不透明）
type Classifier interface {
	Predict(vals []float64) (bool, error)
	PredictProba(vals []float64) (float64, error)
	FeatureNames() []string
}

// manifest 模型清单文件（与训练侧导出格式约定一致）
type manifest struct {
	ModelPath    string   `json:"model_path"`
	FeatureNames []string `json:"feature_names"`
	RawMargin    bool     `json:"raw_margin"` // 模型输出为原始 margin 时需要 sigmoid
	Threshold    float64  `json:"threshold"`
}

// Bundle 已加载的风险模型（启动时加载一次，只读共享）
type Bundle struct {
	ensemble     *leaves.Ensemble
	featureNames []string
	rawMargin    bool
	threshold    float64
	logger       *zap.Logger
}

// LoadBundle 从清单文件加载模型。
// 加载失败只禁用预测功能，不影响其余模块；调用方据此降级。
func LoadBundle(manifestPath string, logger *zap.Logger) (*Bundle, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("读取模型清单失败: %w", err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("解析模型清单失败: %w", err)
	}
	if len(m.FeatureNames) == 0 {
		return nil, fmt.Errorf("模型清单缺少 feature_names")
	}
	if m.Threshold <= 0 || m.Threshold >= 1 {
		m.Threshold = 0.5
	}

	// 模型文件路径相对于清单所在目录
	modelPath := m.ModelPath
	if !filepath.IsAbs(modelPath) {
		modelPath = filepath.Join(filepath.Dir(manifestPath), modelPath)
	}

	ensemble, err := loadEnsemble(modelPath)
	if err != nil {
		return nil, err
	}

	if ensemble.NFeatures() > len(m.FeatureNames) {
		return nil, fmt.Errorf("模型需要 %d 个特征，清单只声明了 %d 列",
			ensemble.NFeatures(), len(m.FeatureNames))
	}

	logger.Info("风险模型加载完成",
		zap.String("model", ensemble.Name()),
		zap.Int("trees", ensemble.NEstimators()),
		zap.Int("features", len(m.FeatureNames)),
		zap.Float64("threshold", m.Threshold))

	return &Bundle{
		ensemble:     ensemble,
		featureNames: m.FeatureNames,
		rawMargin:    m.RawMargin,
		threshold:    m.Threshold,
		logger:       logger,
	}, nil
}

// loadEnsemble 按格式依次尝试 XGBoost / LightGBM
func loadEnsemble(path string) (*leaves.Ensemble, error) {
	ensemble, xgErr := leaves.XGEnsembleFromFile(path, true)
	if xgErr == nil {
		return ensemble, nil
	}
	ensemble, lgErr := leaves.LGEnsembleFromFile(path, true)
	if lgErr == nil {
		return ensemble, nil
	}
	return nil, fmt.Errorf("加载模型文件失败: xgboost: %v; lightgbm: %v", xgErr, lgErr)
}

// FeatureNames 模型声明的特征列顺序
func (b *Bundle) FeatureNames() []string {
	return b.featureNames
}

// PredictProba 返回阳性类概率
func (b *Bundle) PredictProba(vals []float64) (float64, error) {
	if len(vals) != len(b.featureNames) {
		return 0, fmt.Errorf("特征数量与模型 schema 不一致: %d != %d", len(vals), len(b.featureNames))
	}

	score := b.ensemble.PredictSingle(vals, 0)
	if b.rawMargin {
		score = sigmoid(score)
	}
	return score, nil
}

// Predict 返回二分类标签（概率 >= 阈值）
func (b *Bundle) Predict(vals []float64) (bool, error) {
	proba, err := b.PredictProba(vals)
	if err != nil {
		return false, err
	}
	return proba >= b.threshold, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
