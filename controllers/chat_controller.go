package controllers

import (
	"net/http"

	"titanfit/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chat  *services.ChatService
	users *services.UserService
}

func NewChatController(chat *services.ChatService, users *services.UserService) *ChatController {
	return &ChatController{chat: chat, users: users}
}

type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// POST /api/chat — one coach round trip; any embedded action is applied
// before the reply goes back
func (ctl *ChatController) Send(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	user, err := ctl.users.Get(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	res, err := ctl.chat.Send(c.Request.Context(), user, input.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
