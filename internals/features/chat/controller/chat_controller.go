package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/features/chat/model"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/chat/service"
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

const maxMessageLength = 500

type ChatController struct {
	DB *gorm.DB
}

type chatRequest struct {
	Message string `json:"message"`
}

// =========================================================
// SEND - POST /api/ai-chat
// =========================================================
func (h *ChatController) Send(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Format request tidak valid")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Pesan tidak boleh kosong")
	}
	if len([]rune(message)) > maxMessageLength {
		return helper.Error(c, fiber.StatusBadRequest, "Pesan terlalu panjang. Maksimal 500 karakter.")
	}

	var user userModel.UserModel
	if err := h.DB.First(&user, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}

	messages := service.BuildChatMessages(h.DB, &user, message)

	if err := h.DB.Create(&model.ChatHistoryModel{
		ChatHistoryUserID:  userID,
		ChatHistoryRole:    model.ChatRoleUser,
		ChatHistoryMessage: message,
	}).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan pesan")
	}

	reply := service.CallOpenRouter(messages)
	if reply == "" {
		reply = service.FallbackReply
	}

	if err := h.DB.Create(&model.ChatHistoryModel{
		ChatHistoryUserID:  userID,
		ChatHistoryRole:    model.ChatRoleAssistant,
		ChatHistoryMessage: reply,
	}).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan balasan")
	}

	return helper.Success(c, "Balasan asisten", fiber.Map{"reply": reply})
}

// =========================================================
// CLEAR - DELETE /api/ai-chat/clear
// =========================================================
func (h *ChatController) Clear(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	res := h.DB.Where("chat_history_user_id = ?", userID).Delete(&model.ChatHistoryModel{})
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus riwayat chat")
	}

	return helper.Success(c, "Riwayat chat dihapus", fiber.Map{"deleted": res.RowsAffected})
}
