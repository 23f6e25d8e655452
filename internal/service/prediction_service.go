package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/features"
	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
	"github.com/ahdcopilot/ahd-copilot-go/internal/predictor"
)

// ErrModelUnavailable 模型未加载（预测功能降级，其余功能不受影响）
var ErrModelUnavailable = errors.New("风险模型不可用")

// PredictionService 风险预测服务
type PredictionService struct {
	classifier predictor.Classifier // nil 表示模型加载失败
	logger     *zap.Logger
}

// NewPredictionService 创建预测服务（classifier 可为 nil）
func NewPredictionService(classifier predictor.Classifier, logger *zap.Logger) *PredictionService {
	return &PredictionService{classifier: classifier, logger: logger}
}

// Available 模型是否可用
func (s *PredictionService) Available() bool {
	return s.classifier != nil
}

// Predict 构建特征 -> 对齐 schema -> 预测 -> 分层 -> 解读。
// schema 不一致属于配置错误，直接失败不重试。
func (s *PredictionService) Predict(obs model.PatientObservation) (*model.PredictResponse, error) {
	if s.classifier == nil {
		return nil, ErrModelUnavailable
	}

	vec := features.Build(obs)
	vals, err := vec.Align(s.classifier.FeatureNames())
	if err != nil {
		return nil, fmt.Errorf("特征 schema 对齐失败（配置错误）: %w", err)
	}

	proba, err := s.classifier.PredictProba(vals)
	if err != nil {
		return nil, fmt.Errorf("预测失败: %w", err)
	}
	label, err := s.classifier.Predict(vals)
	if err != nil {
		return nil, fmt.Errorf("预测失败: %w", err)
	}

	tier := predictor.TierOf(proba)
	narrative := predictor.Interpret(label, vec)

	s.logger.Info("完成风险预测",
		zap.Bool("label", label),
		zap.Float64("probability", proba),
		zap.String("tier", string(tier)))

	return &model.PredictResponse{
		Label:           label,
		Probability:     proba,
		Tier:            string(tier),
		Banner:          tier.Banner(),
		Findings:        narrative.Findings,
		Recommendations: narrative.Recommendations,
		Features:        vec,
	}, nil
}
