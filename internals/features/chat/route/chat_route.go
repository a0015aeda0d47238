package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/features/chat/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

func ChatRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := &controller.ChatController{DB: db}

	chat := app.Group("/api/ai-chat", authMw.AuthMiddleware())
	chat.Post("/", ctrl.Send)
	chat.Delete("/clear", ctrl.Clear)
}
