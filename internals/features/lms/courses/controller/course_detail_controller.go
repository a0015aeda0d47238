package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/dto"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	enrollService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/service"
	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	progressService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/progress/service"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
	quizService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/service"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

// =========================================================
// DETAIL - GET /api/courses/:id (publik, auth opsional)
// =========================================================
func (h *CourseController) Detail(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var course courseModel.CourseModel
	if err := h.DB.Preload("CourseInstructor").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	// userID 0 = anonim; semua flag personal bernilai default
	userID, _ := helper.GetUserID(c)

	access, err := enrollService.CanAccess(h.DB, userID, &course)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa akses")
	}

	var lessons []lessonModel.LessonModel
	if err := h.DB.Where("lesson_course_id = ?", course.CourseID).
		Order("lesson_id ASC").
		Find(&lessons).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil lesson")
	}

	completedIDs := map[uint]bool{}
	if userID != 0 && len(lessons) > 0 {
		lessonIDs := make([]uint, 0, len(lessons))
		for _, l := range lessons {
			lessonIDs = append(lessonIDs, l.LessonID)
		}
		var progress []lessonModel.LessonProgressModel
		if err := h.DB.Where("lesson_progress_user_id = ? AND lesson_progress_lesson_id IN ?", userID, lessonIDs).
			Find(&progress).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil progress lesson")
		}
		for _, p := range progress {
			completedIDs[p.LessonProgressLessonID] = true
		}
	}

	withStatus := make([]dto.LessonWithStatus, 0, len(lessons))
	for _, l := range lessons {
		withStatus = append(withStatus, dto.LessonWithStatus{
			LessonModel: l,
			IsCompleted: completedIDs[l.LessonID],
		})
	}

	resp := dto.CourseDetailResponse{
		Course:   dto.ToCourseResponse(&course),
		Lessons:  withStatus,
		Enrolled: access.Enrolled,
		Unlocked: access.Unlocked,
	}

	var questionCount int64
	if err := h.DB.Model(&quizModel.QuestionModel{}).
		Where("question_course_id = ?", course.CourseID).
		Count(&questionCount).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung soal kuis")
	}
	resp.QuestionCount = int(questionCount)

	var exercise exerciseModel.ExerciseModel
	err = h.DB.Where("exercise_course_id = ?", course.CourseID).First(&exercise).Error
	if err == nil {
		resp.Exercise = &exercise
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil latihan")
	}

	if userID != 0 {
		components, err := progressService.Evaluate(h.DB, userID, course.CourseID)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung progress")
		}
		// progress hanya bermakna untuk siswa terdaftar
		if access.Enrolled {
			resp.Progress = components
		} else {
			resp.Progress = progressService.Components{Total: components.Total, LessonsTotal: components.LessonsTotal}
		}

		attempt, err := quizService.LatestAttempt(h.DB, userID, course.CourseID)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil attempt kuis")
		}
		resp.LatestAttempt = attempt

		var sub exerciseModel.ExerciseSubmissionModel
		err = h.DB.Where("exercise_submission_user_id = ? AND exercise_submission_course_id = ?", userID, course.CourseID).
			First(&sub).Error
		if err == nil {
			resp.ExerciseSubmission = &sub
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil submission latihan")
		}

		var inCart int64
		if err := h.DB.Model(&cartModel.CartItemModel{}).
			Where("cart_item_user_id = ? AND cart_item_course_id = ?", userID, course.CourseID).
			Count(&inCart).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa keranjang")
		}
		resp.InCart = inCart > 0
	}

	return helper.Success(c, "Detail course berhasil diambil", resp)
}

// =========================================================
// MY COURSES - GET /api/courses/my (student)
// Daftar course terdaftar + persen penyelesaian lesson per course.
// =========================================================
func (h *CourseController) MyCourses(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var enrollments []enrollModel.EnrollmentModel
	if err := h.DB.Where("enrollment_user_id = ?", userID).
		Order("enrollment_id DESC").
		Find(&enrollments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pendaftaran")
	}

	out := make([]dto.MyCourseResponse, 0, len(enrollments))
	for _, e := range enrollments {
		var course courseModel.CourseModel
		if err := h.DB.Preload("CourseInstructor").First(&course, e.EnrollmentCourseID).Error; err != nil {
			continue
		}
		percent, err := progressService.LessonPercent(h.DB, userID, course.CourseID)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung progress lesson")
		}
		out = append(out, dto.MyCourseResponse{
			CourseResponse: dto.ToCourseResponse(&course),
			Unlocked:       !course.CourseIsPremium || e.EnrollmentUnlocked,
			LessonPercent:  percent,
		})
	}

	return helper.Success(c, "Kursus saya berhasil diambil", out)
}
