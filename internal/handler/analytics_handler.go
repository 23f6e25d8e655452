package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/service"
)

// 合成队列规模上限
const maxCohortSize = 5000

// AnalyticsHandler 队列分析处理器
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsHandler 创建分析处理器
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Overview 合成队列汇总（演示数据）
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	n := 100
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxCohortSize {
			c.JSON(400, gin.H{"error": "n 必须是 1-5000 之间的整数"})
			return
		}
		n = parsed
	}

	records := h.analyticsService.SyntheticCohort(n)
	c.JSON(200, h.analyticsService.Overview(records, 0))
}

// Upload 上传 CSV 队列并返回汇总
func (h *AnalyticsHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "缺少上传文件 file"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("打开上传文件失败", zap.Error(err))
		c.JSON(500, gin.H{"error": "upload failed"})
		return
	}
	defer f.Close()

	records, skipped, err := h.analyticsService.ParseCSV(f)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("队列上传完成",
		zap.String("file", fileHeader.Filename),
		zap.Int("rows", len(records)),
		zap.Int("skipped", skipped))

	c.JSON(200, h.analyticsService.Overview(records, skipped))
}
