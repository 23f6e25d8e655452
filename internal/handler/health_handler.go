package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ahdcopilot/ahd-copilot-go/internal/service"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	serviceName       string
	predictionService *service.PredictionService
	sessionService    *service.SessionService
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(serviceName string, predictionService *service.PredictionService, sessionService *service.SessionService) *HealthHandler {
	return &HealthHandler{
		serviceName:       serviceName,
		predictionService: predictionService,
		sessionService:    sessionService,
	}
}

// Health 健康检查（模型不可用时仍返回 UP，仅标记 modelLoaded=false）
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":         "UP",
		"service":        h.serviceName,
		"modelLoaded":    h.predictionService.Available(),
		"onlineSessions": h.sessionService.OnlineCount(),
	})
}
