package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/chatbot"
	"github.com/ahdcopilot/ahd-copilot-go/internal/client"
	"github.com/ahdcopilot/ahd-copilot-go/internal/config"
	"github.com/ahdcopilot/ahd-copilot-go/internal/handler"
	"github.com/ahdcopilot/ahd-copilot-go/internal/history"
	"github.com/ahdcopilot/ahd-copilot-go/internal/middleware"
	"github.com/ahdcopilot/ahd-copilot-go/internal/predictor"
	"github.com/ahdcopilot/ahd-copilot-go/internal/service"
	"github.com/ahdcopilot/ahd-copilot-go/pkg/logger"
	"github.com/ahdcopilot/ahd-copilot-go/pkg/redis"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig("configs/copilot.yaml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("copilot 服务启动中...")

	// 加载风险模型（失败只禁用预测，不影响其余模块）
	var classifier predictor.Classifier
	bundle, err := predictor.LoadBundle(cfg.Model.ManifestPath, zapLogger)
	if err != nil {
		zapLogger.Error("风险模型加载失败，预测功能已禁用", zap.Error(err))
	} else {
		classifier = bundle
	}

	// 会话历史存储：Redis 优先，未启用或连接失败时回落内存
	var store history.Store
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewRedisClient(cfg.Redis)
		if err != nil {
			zapLogger.Error("连接 Redis 失败，回落内存历史存储", zap.Error(err))
			store = history.NewMemoryStore(zapLogger)
		} else {
			store = history.NewRedisStore(redisClient, zapLogger)
		}
	} else {
		store = history.NewMemoryStore(zapLogger)
	}

	// 远端文本生成（未配置 APIKey 时仅用本地规则库）
	var remote service.TextGenerator
	if cfg.DashScope.APIKey != "" {
		remote = client.NewDashScopeClient(
			cfg.DashScope.APIKey,
			cfg.DashScope.Model,
			time.Duration(cfg.DashScope.TimeoutSeconds)*time.Second,
			zapLogger)
		zapLogger.Info("远端文本生成已启用",
			zap.String("model", cfg.DashScope.Model),
			zap.Int("timeoutSeconds", cfg.DashScope.TimeoutSeconds))
	}

	// 初始化服务
	engine := chatbot.NewEngine()
	chatService := service.NewChatService(engine, remote, store, zapLogger)
	predictionService := service.NewPredictionService(classifier, zapLogger)
	analyticsService := service.NewAnalyticsService(zapLogger)
	sessionService := service.NewSessionService(zapLogger)

	// 初始化处理器
	chatHandler := handler.NewChatHandler(chatService, zapLogger)
	predictHandler := handler.NewPredictHandler(predictionService, zapLogger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, zapLogger)
	wsHandler := handler.NewWebSocketHandler(sessionService, chatService, zapLogger)
	healthHandler := handler.NewHealthHandler(cfg.Server.Name, predictionService, sessionService)

	// 初始化路由
	r := gin.Default()
	r.Use(middleware.CORS())

	// WebSocket 端点
	r.GET("/ws", wsHandler.HandleWebSocket)

	// HTTP API
	r.POST("/api/predict", predictHandler.Predict)
	r.POST("/api/chat", chatHandler.Chat)
	r.GET("/api/chat/history", chatHandler.History)
	r.POST("/api/chat/clear", chatHandler.Clear)
	r.POST("/api/chat/quick-action", chatHandler.QuickAction)
	r.GET("/api/chat/quick-actions", chatHandler.QuickActions)
	r.GET("/api/analytics/overview", analyticsHandler.Overview)
	r.POST("/api/analytics/upload", analyticsHandler.Upload)
	r.GET("/api/health", healthHandler.Health)

	// 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("copilot 服务启动成功",
		zap.Int("port", cfg.Server.Port),
		zap.Bool("modelLoaded", predictionService.Available()))

	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("服务启动失败", zap.Error(err))
	}
}
