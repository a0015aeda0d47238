package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/auth/controller"
	"github.com/faaiqa01/course-online-nm-rbd/internals/middlewares"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// AuthRoutes: endpoint publik /api/auth/*
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &authController.AuthController{DB: db}

	api := app.Group("/api/auth")
	api.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	api.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	api.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctl.ForgotPassword)
	api.Post("/logout", authMw.AuthMiddleware(), ctl.Logout)
}
