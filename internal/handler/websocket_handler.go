package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
	"github.com/ahdcopilot/ahd-copilot-go/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境应该检查 Origin 白名单
		return true
	},
}

// WebSocketHandler WebSocket 问答通道处理器
type WebSocketHandler struct {
	sessionService *service.SessionService
	chatService    *service.ChatService
	logger         *zap.Logger
}

// NewWebSocketHandler 创建 WebSocket 处理器
func NewWebSocketHandler(sessionService *service.SessionService, chatService *service.ChatService, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		sessionService: sessionService,
		chatService:    chatService,
		logger:         logger,
	}
}

// HandleWebSocket WebSocket 连接入口（?session= 缺省时新建会话）
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	sessionID := c.Query("session")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket 升级失败", zap.Error(err))
		return
	}
	defer conn.Close()

	h.sessionService.Register(sessionID, conn, c.ClientIP())
	defer h.sessionService.Remove(sessionID)

	h.logger.Info("WebSocket 连接建立", zap.String("sessionId", sessionID))

	// 消息循环
	for {
		var msg model.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket 读取错误", zap.Error(err))
			}
			break
		}

		h.handleMessage(sessionID, &msg)
	}

	h.logger.Info("WebSocket 连接断开", zap.String("sessionId", sessionID))
}

// handleMessage 处理一帧消息
func (h *WebSocketHandler) handleMessage(sessionID string, msg *model.WSMessage) {
	switch msg.Type {
	case model.WSTypeChat:
		reply, err := h.chatService.Respond(context.Background(), sessionID, msg.Content)
		if err != nil {
			h.logger.Error("问答处理失败",
				zap.String("sessionId", sessionID),
				zap.Error(err))
			return
		}

		h.sessionService.SendTo(sessionID, model.WSMessage{
			MessageID: reply.MessageID,
			Type:      model.WSTypeAIResponse,
			Content:   reply.Content,
			Source:    reply.Source,
		})

	case model.WSTypeHeartbeat:
		h.sessionService.UpdateHeartbeat(sessionID)
		h.logger.Debug("收到心跳", zap.String("sessionId", sessionID))

	default:
		h.logger.Warn("未知消息类型",
			zap.String("sessionId", sessionID),
			zap.String("type", msg.Type))
	}
}
