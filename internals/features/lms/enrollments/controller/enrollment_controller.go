package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	enrollService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/service"
	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	progressService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/progress/service"
	quizService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/service"
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func (h *EnrollmentController) loadCourse(c *fiber.Ctx) (*courseModel.CourseModel, error) {
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

func (h *EnrollmentController) requireOwner(c *fiber.Ctx) (*courseModel.CourseModel, error) {
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
// ENROLL - POST /api/courses/:course_id/enroll (student)
// Course gratis langsung terbuka; premium diarahkan sesuai statusnya.
// =========================================================
func (h *EnrollmentController) Enroll(c *fiber.Ctx) error {
	course, ferr := h.loadCourse(c)
	if course == nil {
		return ferr
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	outcome, err := enrollService.EnrollFree(h.DB, userID, course)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses pendaftaran")
	}

	switch outcome {
	case enrollService.EnrollCreated:
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Berhasil mendaftar course", nil)
	case enrollService.EnrollAlreadyEnrolled:
		return helper.Error(c, fiber.StatusConflict, "Anda sudah terdaftar di course ini")
	case enrollService.EnrollAwaitingPayment:
		return helper.Error(c, fiber.StatusPaymentRequired, "Pendaftaran menunggu pembayaran. Selesaikan pembayaran untuk membuka course.")
	default: // EnrollNeedsCart
		return helper.Error(c, fiber.StatusPaymentRequired, "Course premium. Tambahkan ke keranjang lalu checkout untuk mendaftar.")
	}
}

// =========================================================
// MANAGE - GET /api/courses/:course_id/enrollments (instructor pemilik)
// =========================================================
func (h *EnrollmentController) ManageEnrollments(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}

	var enrollments []enrollModel.EnrollmentModel
	if err := h.DB.Where("enrollment_course_id = ?", course.CourseID).
		Order("enrollment_id ASC").
		Find(&enrollments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar siswa")
	}

	type enrolledStudent struct {
		EnrollmentID uint   `json:"enrollment_id"`
		UserID       uint   `json:"user_id"`
		UserName     string `json:"user_name"`
		Email        string `json:"email"`
		Unlocked     bool   `json:"unlocked"`
	}

	out := make([]enrolledStudent, 0, len(enrollments))
	for _, e := range enrollments {
		var u userModel.UserModel
		if err := h.DB.First(&u, e.EnrollmentUserID).Error; err != nil {
			continue
		}
		out = append(out, enrolledStudent{
			EnrollmentID: e.EnrollmentID,
			UserID:       u.UserID,
			UserName:     u.UserName,
			Email:        u.UserEmail,
			Unlocked:     !course.CourseIsPremium || e.EnrollmentUnlocked,
		})
	}

	return helper.Success(c, "Daftar siswa berhasil diambil", fiber.Map{
		"course":   course,
		"students": out,
	})
}

// =========================================================
// STUDENT DETAIL - GET /api/courses/:course_id/enrollments/:user_id
// Detail kemajuan satu siswa untuk instruktur pemilik.
// =========================================================
func (h *EnrollmentController) StudentDetail(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}
	studentID, err := c.ParamsInt("user_id")
	if err != nil || studentID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	var student userModel.UserModel
	if err := h.DB.First(&student, studentID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}

	percent, err := progressService.LessonPercent(h.DB, student.UserID, course.CourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung progress lesson")
	}

	// Daftar judul materi yang sudah diselesaikan siswa
	var completedTitles []string
	if err := h.DB.Model(&lessonModel.LessonModel{}).
		Joins("JOIN lesson_progress ON lesson_progress.lesson_progress_lesson_id = lessons.lesson_id").
		Where("lessons.lesson_course_id = ? AND lesson_progress.lesson_progress_user_id = ?", course.CourseID, student.UserID).
		Pluck("lessons.lesson_title", &completedTitles).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil materi selesai")
	}

	attempt, err := quizService.LatestAttempt(h.DB, student.UserID, course.CourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil attempt kuis")
	}

	var sub *exerciseModel.ExerciseSubmissionModel
	var found exerciseModel.ExerciseSubmissionModel
	err = h.DB.Where("exercise_submission_user_id = ? AND exercise_submission_course_id = ?", student.UserID, course.CourseID).
		First(&found).Error
	if err == nil {
		sub = &found
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil submission latihan")
	}

	return helper.Success(c, "Detail siswa berhasil diambil", fiber.Map{
		"student": fiber.Map{
			"user_id":   student.UserID,
			"user_name": student.UserName,
			"email":     student.UserEmail,
		},
		"lesson_percent":      percent,
		"completed_materials": completedTitles,
		"latest_attempt":      attempt,
		"exercise_submission": sub,
	})
}

// =========================================================
// UNENROLL - DELETE /api/courses/:course_id/enrollments/:user_id
// Membersihkan seluruh jejak siswa di course (attempt, submission,
// progress, keranjang, enrollment).
// =========================================================
func (h *EnrollmentController) Unenroll(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}
	studentID, err := c.ParamsInt("user_id")
	if err != nil || studentID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID siswa tidak valid")
	}

	if err := enrollService.UnenrollStudent(h.DB, course.CourseID, uint(studentID)); err != nil {
		if errors.Is(err, enrollService.ErrNotEnrolled) {
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengeluarkan siswa")
	}
	return helper.Success(c, "Siswa berhasil dikeluarkan dari course", nil)
}
