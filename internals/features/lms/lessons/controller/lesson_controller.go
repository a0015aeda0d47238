package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/service"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/dto"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	lessonService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/service"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type LessonController struct {
	DB *gorm.DB
}

var validate = validator.New()

func (h *LessonController) loadCourse(c *fiber.Ctx) (*courseModel.CourseModel, error) {
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

func (h *LessonController) requireOwner(c *fiber.Ctx) (*courseModel.CourseModel, error) {
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
// CREATE - POST /api/courses/:course_id/lessons (instructor pemilik)
// =========================================================
func (h *LessonController) Create(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}

	var req dto.LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	lesson := req.ToModel(course.CourseID)
	if err := h.DB.Create(lesson).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat lesson")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lesson berhasil dibuat", lesson)
}

// =========================================================
// UPDATE - PUT /api/courses/:course_id/lessons/:lesson_id
// =========================================================
func (h *LessonController) Update(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}
	lessonID, err := c.ParamsInt("lesson_id")
	if err != nil || lessonID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID lesson tidak valid")
	}

	var lesson lessonModel.LessonModel
	if err := h.DB.Where("lesson_id = ? AND lesson_course_id = ?", lessonID, course.CourseID).
		First(&lesson).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Lesson tidak ditemukan pada course ini")
	}

	var req dto.LessonRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	lesson.LessonTitle = req.Title
	lesson.LessonContent = req.Content
	lesson.LessonVideoURL = req.VideoURL
	lesson.LessonMeetingURL = req.MeetingURL
	lesson.LessonStartDate = req.StartDate
	lesson.ApplyCategory(req.Category)

	if err := h.DB.Save(&lesson).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui lesson")
	}
	return helper.Success(c, "Lesson berhasil diperbarui", lesson)
}

// =========================================================
// DELETE - DELETE /api/courses/:course_id/lessons/:lesson_id
// Progress siswa untuk lesson ini ikut terhapus.
// =========================================================
func (h *LessonController) Delete(c *fiber.Ctx) error {
	course, ferr := h.requireOwner(c)
	if course == nil {
		return ferr
	}
	lessonID, err := c.ParamsInt("lesson_id")
	if err != nil || lessonID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID lesson tidak valid")
	}

	var lesson lessonModel.LessonModel
	if err := h.DB.Where("lesson_id = ? AND lesson_course_id = ?", lessonID, course.CourseID).
		First(&lesson).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Lesson tidak ditemukan pada course ini")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_progress_lesson_id = ?", lesson.LessonID).
			Delete(&lessonModel.LessonProgressModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lesson).Error
	})
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus lesson")
	}
	return helper.Success(c, "Lesson berhasil dihapus", nil)
}

// =========================================================
// COMPLETE - POST /api/courses/:course_id/lessons/:lesson_id/complete (student)
// Gerbang: harus terdaftar DAN punya akses (course gratis atau sudah dibuka).
// Idempotent: lesson yang sudah selesai bukan error.
// =========================================================
func (h *LessonController) Complete(c *fiber.Ctx) error {
	course, ferr := h.loadCourse(c)
	if course == nil {
		return ferr
	}
	lessonID, err := c.ParamsInt("lesson_id")
	if err != nil || lessonID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID lesson tidak valid")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	access, err := enrollService.CanAccess(h.DB, userID, course)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}
	if !access.Enrolled {
		return helper.Error(c, fiber.StatusForbidden, "Daftar course terlebih dahulu")
	}
	if !access.Unlocked {
		return helper.Error(c, fiber.StatusForbidden, "Selesaikan pembayaran untuk membuka materi course ini")
	}

	created, err := lessonService.CompleteLesson(h.DB, userID, course.CourseID, uint(lessonID))
	if err != nil {
		if errors.Is(err, lessonService.ErrLessonNotInCourse) {
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menandai lesson selesai")
	}
	if !created {
		return helper.Success(c, "Lesson sudah pernah ditandai selesai", nil)
	}
	return helper.Success(c, "Lesson ditandai selesai", nil)
}
