package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// UserRoutes: endpoint profil /api/users/* (wajib login)
func UserRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &userController.UserController{DB: db}

	api := app.Group("/api/users", authMw.AuthMiddleware())
	api.Get("/profile", ctl.GetProfile)
	api.Put("/profile", ctl.UpdateProfile)
	api.Delete("/profile/certificate", ctl.DeleteCertificate)
}
