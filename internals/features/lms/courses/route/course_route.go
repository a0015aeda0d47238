package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseController "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// CourseRoutes: katalog publik + manajemen course instruktur.
func CourseRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &courseController.CourseController{DB: db}

	// Publik (auth opsional supaya flag personal ikut terisi saat login)
	public := app.Group("/api", authMw.OptionalAuthMiddleware())
	public.Get("/home", ctl.Home)
	public.Get("/courses", ctl.List)

	private := app.Group("/api/courses", authMw.AuthMiddleware())
	private.Get("/my", authMw.OnlyStudent("kursus saya"), ctl.MyCourses)
	private.Post("/", authMw.OnlyInstructor("membuat course"), ctl.Create)
	private.Put("/:id", authMw.OnlyInstructor("mengubah course"), ctl.Update)
	private.Delete("/:id", authMw.OnlyInstructor("menghapus course"), ctl.Delete)

	// Detail paling akhir supaya tidak menangkap /my
	public.Get("/courses/:id", ctl.Detail)
}
