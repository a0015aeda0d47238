package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollController "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// EnrollmentRoutes: pendaftaran siswa + manajemen siswa oleh instruktur.
func EnrollmentRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &enrollController.EnrollmentController{DB: db}

	api := app.Group("/api/courses/:course_id", authMw.AuthMiddleware())
	api.Post("/enroll", authMw.OnlyStudent("mendaftar course"), ctl.Enroll)

	manage := api.Group("/enrollments", authMw.OnlyInstructor("mengelola siswa"))
	manage.Get("/", ctl.ManageEnrollments)
	manage.Get("/:user_id", ctl.StudentDetail)
	manage.Delete("/:user_id", ctl.Unenroll)
}
