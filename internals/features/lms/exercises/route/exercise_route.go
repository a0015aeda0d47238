package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	exerciseController "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// ExerciseRoutes: kelola & nilai latihan (instructor), kirim latihan (student).
func ExerciseRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &exerciseController.ExerciseController{DB: db}

	api := app.Group("/api/courses/:course_id/exercise", authMw.AuthMiddleware())
	api.Get("/", ctl.Get)
	api.Put("/", authMw.OnlyInstructor("mengelola latihan"), ctl.Manage)
	api.Post("/submit", authMw.OnlyStudent("mengirim latihan"), ctl.Submit)
	api.Put("/score/:user_id", authMw.OnlyInstructor("menilai latihan"), ctl.UpdateScore)
}
