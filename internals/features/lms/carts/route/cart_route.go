package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cartController "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// CartRoutes: keranjang hanya untuk student.
func CartRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &cartController.CartController{DB: db}

	api := app.Group("/api/cart", authMw.AuthMiddleware(), authMw.OnlyStudent("keranjang"))
	api.Get("/", ctl.View)
	api.Post("/checkout", ctl.Checkout)
	api.Post("/:course_id", ctl.Add)
	api.Delete("/:course_id", ctl.Remove)
}
