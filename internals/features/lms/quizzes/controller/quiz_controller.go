package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/service"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/dto"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
	quizService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/service"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type QuizController struct {
	DB *gorm.DB
}

var validate = validator.New()

func (h *QuizController) loadCourse(c *fiber.Ctx) (*courseModel.CourseModel, error) {
	courseID, err := c.ParamsInt("course_id")
	if err != nil || courseID <= 0 {
		return nil, helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}
	var course courseModel.CourseModel
	if err := h.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	return &course, nil
}

func (h *QuizController) requireOwner(c *fiber.Ctx) (*courseModel.CourseModel, error) {
	course, ferr := h.loadCourse(c)
	if course == nil {
		return nil, ferr
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return nil, helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	if course.CourseInstructorID != userID {
		return nil, helper.Error(c, fiber.StatusForbidden, "Anda bukan pemilik course ini")
	}
	return course, nil
}

func writeErrStatus(err error) int {
	switch {
	case errors.Is(err, quizService.ErrChoiceCountRange),
		errors.Is(err, quizService.ErrNoCorrectChoice),
		errors.Is(err, quizService.ErrTooManyCorrect):
		return fiber.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// =========================================================
// ADD QUESTION - POST /api/courses/:course_id/quiz/questions
// Tepat satu pilihan benar, ditolak saat tulis.
// =========================================================
func (h *QuizController) AddQuestion(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}

	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	q, err := quizService.CreateQuestion(h.DB, course.CourseID, req.Text, req.Choices)
	if err != nil {
		return helper.Error(c, writeErrStatus(err), err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Soal berhasil ditambahkan", q)
}

// =========================================================
// EDIT QUESTION - PUT /api/courses/:course_id/quiz/questions/:question_id
// =========================================================
func (h *QuizController) EditQuestion(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}
	questionID, err := c.ParamsInt("question_id")
	if err != nil || questionID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID soal tidak valid")
	}

	var q quizModel.QuestionModel
	if err := h.DB.Where("question_id = ? AND question_course_id = ?", questionID, course.CourseID).
		First(&q).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Soal tidak ditemukan pada course ini")
	}

	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := quizService.UpdateQuestion(h.DB, q.QuestionID, req.Text, req.Choices); err != nil {
		return helper.Error(c, writeErrStatus(err), err.Error())
	}
	return helper.Success(c, "Soal berhasil diperbarui", nil)
}

// =========================================================
// DELETE QUESTION - DELETE /api/courses/:course_id/quiz/questions/:question_id
// =========================================================
func (h *QuizController) DeleteQuestion(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}
	questionID, err := c.ParamsInt("question_id")
	if err != nil || questionID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID soal tidak valid")
	}

	var q quizModel.QuestionModel
	if err := h.DB.Where("question_id = ? AND question_course_id = ?", questionID, course.CourseID).
		First(&q).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Soal tidak ditemukan pada course ini")
	}

	if err := quizService.DeleteQuestion(h.DB, q.QuestionID); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus soal")
	}
	return helper.Success(c, "Soal berhasil dihapus", nil)
}

// =========================================================
// QUIZ DATES - PUT /api/courses/:course_id/quiz/dates
// =========================================================
func (h *QuizController) SetQuizDates(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}

	var req dto.QuizDatesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return helper.Error(c, fiber.StatusBadRequest, "Tanggal selesai kuis harus setelah tanggal mulai")
	}

	course.CourseQuizStartDate = req.StartDate
	course.CourseQuizEndDate = req.EndDate
	if err := h.DB.Save(course).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan jadwal kuis")
	}
	return helper.Success(c, "Jadwal kuis berhasil disimpan", fiber.Map{
		"quiz_start_date": course.CourseQuizStartDate,
		"quiz_end_date":   course.CourseQuizEndDate,
	})
}

// =========================================================
// TAKE - GET /api/courses/:course_id/quiz
// Soal dikirim TANPA flag jawaban benar. Gerbang sama dengan submit:
// siswa dengan attempt ditolak di sini juga (satu kali kerja).
// =========================================================
func (h *QuizController) TakeQuiz(c *fiber.Ctx) error {
	course, ferr := h.loadCourse(c)
	if course == nil {
		return ferr
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	isInstructor := helper.IsInstructor(c)
	if !isInstructor {
		access, err := enrollService.CanAccess(h.DB, userID, course)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
		}
		if !access.Enrolled || !access.Unlocked {
			return helper.Error(c, fiber.StatusForbidden, "Anda belum punya akses ke kuis course ini")
		}
	}

	if err := quizService.CanTake(h.DB, userID, course.CourseID, isInstructor, course, time.Now()); err != nil {
		switch {
		case errors.Is(err, quizService.ErrAlreadyAttempted):
			return helper.Error(c, fiber.StatusConflict, "Anda sudah menyelesaikan kuis ini. Kuis hanya dapat dikerjakan satu kali.")
		case errors.Is(err, quizService.ErrQuizNotOpen), errors.Is(err, quizService.ErrQuizClosed):
			return helper.Error(c, fiber.StatusForbidden, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa status kuis")
	}

	var questions []quizModel.QuestionModel
	if err := h.DB.Where("question_course_id = ?", course.CourseID).
		Order("question_id ASC").
		Find(&questions).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	if len(questions) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Kuis belum memiliki soal")
	}

	views := make([]dto.QuestionView, 0, len(questions))
	for _, q := range questions {
		var choices []quizModel.ChoiceModel
		if err := h.DB.Where("choice_question_id = ?", q.QuestionID).
			Order("choice_id ASC").
			Find(&choices).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pilihan jawaban")
		}
		view := dto.QuestionView{QuestionID: q.QuestionID, Text: q.QuestionText}
		for _, ch := range choices {
			view.Choices = append(view.Choices, dto.ChoiceView{ChoiceID: ch.ChoiceID, Text: ch.ChoiceText})
		}
		views = append(views, view)
	}

	return helper.Success(c, "Soal kuis berhasil diambil", views)
}

// =========================================================
// SUBMIT - POST /api/courses/:course_id/quiz
// =========================================================
func (h *QuizController) SubmitQuiz(c *fiber.Ctx) error {
	course, ferr := h.loadCourse(c)
	if course == nil {
		return ferr
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	isInstructor := helper.IsInstructor(c)
	if !isInstructor {
		access, err := enrollService.CanAccess(h.DB, userID, course)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
		}
		if !access.Enrolled || !access.Unlocked {
			return helper.Error(c, fiber.StatusForbidden, "Anda belum punya akses ke kuis course ini")
		}
	}

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if len(req.Answers) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Jawaban tidak boleh kosong")
	}

	attempt, err := quizService.SubmitQuiz(h.DB, userID, course.CourseID, isInstructor, course, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, quizService.ErrAlreadyAttempted):
			return helper.Error(c, fiber.StatusConflict, "Kuis hanya dapat dikirim satu kali.")
		case errors.Is(err, quizService.ErrQuizNotOpen), errors.Is(err, quizService.ErrQuizClosed):
			return helper.Error(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, quizService.ErrQuizEmpty):
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menilai kuis")
	}

	return helper.Success(c, fmt.Sprintf("Kuis terkirim. Skor: %d", attempt.AttemptScore), attempt)
}
