package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certController "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/certificates/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// CertificateRoutes: unduh sertifikat hanya untuk student.
func CertificateRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &certController.CertificateController{DB: db}

	app.Get("/api/courses/:course_id/certificate",
		authMw.AuthMiddleware(),
		authMw.OnlyStudent("mengunduh sertifikat"),
		ctl.Download,
	)
}
