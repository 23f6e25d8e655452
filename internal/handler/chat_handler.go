package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahdcopilot/ahd-copilot-go/internal/chatbot"
	"github.com/ahdcopilot/ahd-copilot-go/internal/model"
	"github.com/ahdcopilot/ahd-copilot-go/internal/service"
)

// ChatHandler 问答处理器
type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

// NewChatHandler 创建问答处理器
func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat 单轮问答
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "sessionId 和 message 不能为空"})
		return
	}

	msg, err := h.chatService.Respond(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.logger.Error("问答处理失败", zap.Error(err))
		c.JSON(500, gin.H{"error": "chat failed"})
		return
	}

	c.JSON(200, model.ChatReply{
		MessageID: msg.MessageID,
		Reply:     msg.Content,
		Source:    msg.Source,
	})
}

// History 查询会话历史
func (h *ChatHandler) History(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(400, gin.H{"error": "sessionId 参数不能为空"})
		return
	}

	msgs, err := h.chatService.History(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("读取会话历史失败", zap.Error(err))
		c.JSON(500, gin.H{"error": "history unavailable"})
		return
	}

	c.JSON(200, gin.H{"sessionId": sessionID, "messages": msgs})
}

// Clear 清空会话（整体替换为欢迎语）
func (h *ChatHandler) Clear(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "sessionId 不能为空"})
		return
	}

	if err := h.chatService.Clear(c.Request.Context(), req.SessionID); err != nil {
		h.logger.Error("清空会话失败", zap.Error(err))
		c.JSON(500, gin.H{"error": "clear failed"})
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// QuickAction 注入固定问答对
func (h *ChatHandler) QuickAction(c *gin.Context) {
	var req model.QuickActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "sessionId 和 action 不能为空"})
		return
	}

	msgs, err := h.chatService.QuickAction(c.Request.Context(), req.SessionID, req.Action)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAction) {
			c.JSON(400, gin.H{"error": "unknown quick action", "actions": chatbot.QuickActions()})
			return
		}
		h.logger.Error("快捷提问失败", zap.Error(err))
		c.JSON(500, gin.H{"error": "quick action failed"})
		return
	}

	c.JSON(200, gin.H{"messages": msgs})
}

// QuickActions 返回支持的快捷提问列表
func (h *ChatHandler) QuickActions(c *gin.Context) {
	c.JSON(200, gin.H{"actions": chatbot.QuickActions()})
}
