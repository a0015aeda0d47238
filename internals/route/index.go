package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "github.com/faaiqa01/course-online-nm-rbd/internals/databases"
	chatRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/chat/route"
	cartRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/route"
	certificateRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/certificates/route"
	courseRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/route"
	enrollmentRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/route"
	exerciseRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/route"
	lessonRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/route"
	quizRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/route"
	paymentRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/route"
	authRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/auth/route"
	userRoute "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/route"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app)

	// ===================== AUTH / USER =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up UserRoutes...")
	userRoute.UserRoutes(app, db)

	// ===================== LMS =====================
	log.Println("[INFO] Setting up LessonRoutes...")
	lessonRoute.LessonRoutes(app, db)

	log.Println("[INFO] Setting up EnrollmentRoutes...")
	enrollmentRoute.EnrollmentRoutes(app, db)

	log.Println("[INFO] Setting up QuizRoutes...")
	quizRoute.QuizRoutes(app, db)

	log.Println("[INFO] Setting up ExerciseRoutes...")
	exerciseRoute.ExerciseRoutes(app, db)

	log.Println("[INFO] Setting up CertificateRoutes...")
	certificateRoute.CertificateRoutes(app, db)

	log.Println("[INFO] Setting up CartRoutes...")
	cartRoute.CartRoutes(app, db)

	// ===================== PAYMENT =====================
	log.Println("[INFO] Setting up PaymentRoutes...")
	paymentRoute.PaymentRoutes(app, db)

	// ===================== AI CHAT =====================
	log.Println("[INFO] Setting up ChatRoutes...")
	chatRoute.ChatRoutes(app, db)

	// CourseRoutes terakhir: /api/courses/:id bersifat catch-all.
	log.Println("[INFO] Setting up CourseRoutes...")
	courseRoute.CourseRoutes(app, db)
}

func BaseRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}
