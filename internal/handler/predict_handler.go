package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
	"github.com/ahdcopilot/ahd-copilot-go/internal/service"
)

// PredictHandler 风险预测处理器
type PredictHandler struct {
	predictionService *service.PredictionService
	logger            *zap.Logger
}

// NewPredictHandler 创建预测处理器
func NewPredictHandler(predictionService *service.PredictionService, logger *zap.Logger) *PredictHandler {
	return &PredictHandler{
		predictionService: predictionService,
		logger:            logger,
	}
}

// Predict 风险预测接口。
// 模型不可用时返回 503 并附带明确提示，其余功能不受影响。
func (h *PredictHandler) Predict(c *gin.Context) {
	if !h.predictionService.Available() {
		c.JSON(503, gin.H{"error": "risk model unavailable, prediction is disabled"})
		return
	}

	var obs model.PatientObservation
	if err := c.ShouldBindJSON(&obs); err != nil {
		c.JSON(400, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	resp, err := h.predictionService.Predict(obs)
	if err != nil {
		if errors.Is(err, service.ErrModelUnavailable) {
			c.JSON(503, gin.H{"error": "risk model unavailable, prediction is disabled"})
			return
		}
		h.logger.Error("预测失败", zap.Error(err))
		c.JSON(500, gin.H{"error": "prediction failed"})
		return
	}

	c.JSON(200, resp)
}
