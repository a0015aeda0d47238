package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/service"
	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	exerciseService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/service"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type ExerciseController struct {
	DB *gorm.DB
}

var validate = validator.New()

func (h *ExerciseController) loadCourse(c *fiber.Ctx) (*courseModel.CourseModel, error) {
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

func (h *ExerciseController) requireOwner(c *fiber.Ctx) (*courseModel.CourseModel, error) {
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

// =========================================================
// MANAGE - PUT /api/courses/:course_id/exercise (instructor pemilik)
// Maksimal satu latihan per course, jadi selalu upsert.
// =========================================================
func (h *ExerciseController) Manage(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}

	var req exerciseService.ExerciseInput
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	exercise, err := exerciseService.UpsertExercise(h.DB, course.CourseID, req)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan latihan")
	}
	return helper.Success(c, "Latihan berhasil disimpan", exercise)
}

// =========================================================
// GET - GET /api/courses/:course_id/exercise
// =========================================================
func (h *ExerciseController) Get(c *fiber.Ctx) error {
	course, ferr := h.loadCourse(c)
	if course == nil {
		return ferr
	}

	var exercise exerciseModel.ExerciseModel
	err := h.DB.Where("exercise_course_id = ?", course.CourseID).First(&exercise).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Course ini belum memiliki latihan")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil latihan")
	}

	resp := fiber.Map{"exercise": exercise}
	if userID, uerr := helper.GetUserID(c); uerr == nil && helper.IsStudent(c) {
		var sub exerciseModel.ExerciseSubmissionModel
		serr := h.DB.Where("exercise_submission_user_id = ? AND exercise_submission_course_id = ?", userID, course.CourseID).
			First(&sub).Error
		if serr == nil {
			resp["submission"] = sub
		} else if !errors.Is(serr, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil submission")
		}
	}
	return helper.Success(c, "Latihan berhasil diambil", resp)
}

// =========================================================
// SUBMIT - POST /api/courses/:course_id/exercise/submit (student)
// URL tidak bisa diubah setelah dikirim.
// =========================================================
func (h *ExerciseController) Submit(c *fiber.Ctx) error {
	course, ferr := h.loadCourse(c)
	if course == nil {
		return ferr
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	access, err := enrollService.CanAccess(h.DB, userID, course)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !access.Enrolled || !access.Unlocked {
		return helper.Error(c, fiber.StatusForbidden, "Anda belum punya akses ke latihan course ini")
	}

	var req struct {
		URL string `json:"submission_url" validate:"required,url,max=500"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sub, err := exerciseService.SubmitExercise(h.DB, userID, course.CourseID, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, exerciseService.ErrNoExercise):
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, exerciseService.ErrAlreadySubmitted):
			return helper.Error(c, fiber.StatusConflict, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengirim latihan")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Latihan berhasil dikirim", sub)
}

// =========================================================
// SCORE - PUT /api/courses/:course_id/exercise/score/:user_id
// Instructor pemilik memberi/memperbarui skor submission siswa.
// =========================================================
func (h *ExerciseController) UpdateScore(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}
	studentID, err := c.ParamsInt("user_id")
	if err != nil || studentID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var req struct {
		Score *int `json:"score" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid (skor harus angka)")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sub, err := exerciseService.SetScore(h.DB, uint(studentID), course.CourseID, *req.Score)
	if err != nil {
		switch {
		case errors.Is(err, exerciseService.ErrScoreOutOfRange):
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, exerciseService.ErrNoSubmission):
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan skor")
	}
	return helper.Success(c, "Skor latihan berhasil disimpan", sub)
}
