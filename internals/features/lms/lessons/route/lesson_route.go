package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	lessonController "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// LessonRoutes: manajemen lesson (instructor) + tandai selesai (student).
func LessonRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &lessonController.LessonController{DB: db}

	api := app.Group("/api/courses/:course_id/lessons", authMw.AuthMiddleware())
	api.Post("/", authMw.OnlyInstructor("membuat lesson"), ctl.Create)
	api.Put("/:lesson_id", authMw.OnlyInstructor("mengubah lesson"), ctl.Update)
	api.Delete("/:lesson_id", authMw.OnlyInstructor("menghapus lesson"), ctl.Delete)
	api.Post("/:lesson_id/complete", authMw.OnlyStudent("menyelesaikan lesson"), ctl.Complete)
}
