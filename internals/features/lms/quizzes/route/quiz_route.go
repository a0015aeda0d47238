package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizController "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

// QuizRoutes: kelola soal & jadwal (instructor), kerjakan kuis (semua login).
func QuizRoutes(app *fiber.App, db *gorm.DB) {
	ctl := &quizController.QuizController{DB: db}

	api := app.Group("/api/courses/:course_id/quiz", authMw.AuthMiddleware())
	api.Get("/", ctl.TakeQuiz)
	api.Post("/", ctl.SubmitQuiz)

	manage := api.Group("/questions", authMw.OnlyInstructor("mengelola soal kuis"))
	manage.Post("/", ctl.AddQuestion)
	manage.Put("/:question_id", ctl.EditQuestion)
	manage.Delete("/:question_id", ctl.DeleteQuestion)

	api.Put("/dates", authMw.OnlyInstructor("mengatur jadwal kuis"), ctl.SetQuizDates)
}
