package handlers

import (
	"strconv"

	"collegeskills_backend/internal/middleware"
	"collegeskills_backend/internal/models"
	"collegeskills_backend/internal/services"
	"collegeskills_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService *services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.GET("/conversations", h.ListConversations)
		chat.GET("/conversations/:conversationId/messages", h.ListMessages)
		chat.POST("/conversations/:conversationId/messages", h.SendMessage)
		chat.POST("/conversations/:conversationId/seen", h.MarkSeen)
	}

	client := r.Group("/chat")
	client.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		client.POST("/conversations", h.OpenConversation)
	}
}

func (h *ChatHandler) OpenConversation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.OpenConversationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	conversation, err := h.chatService.OpenConversation(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, conversation)
}

func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	conversations, err := h.chatService.ListConversations(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, conversations)
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	messages, err := h.chatService.ListMessages(c.Param("conversationId"), userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, messages)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), c.Param("conversationId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, message)
}

func (h *ChatHandler) MarkSeen(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.chatService.MarkSeen(c.Param("conversationId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}
