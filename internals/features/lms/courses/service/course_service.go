package service

import (
	"gorm.io/gorm"

	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
)

// DeleteCascade menghapus course beserta seluruh turunannya: lesson dan
// progress-nya, soal dan pilihan, attempt, latihan dan submission, item
// keranjang, serta enrollment. Satu transaksi, semua atau tidak sama sekali.
func DeleteCascade(db *gorm.DB, courseID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var course courseModel.CourseModel
		if err := tx.First(&course, courseID).Error; err != nil {
			return err
		}

		var lessonIDs []uint
		if err := tx.Model(&lessonModel.LessonModel{}).
			Where("lesson_course_id = ?", courseID).
			Pluck("lesson_id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_progress_lesson_id IN ?", lessonIDs).
				Delete(&lessonModel.LessonProgressModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("lesson_course_id = ?", courseID).
			Delete(&lessonModel.LessonModel{}).Error; err != nil {
			return err
		}

		var questionIDs []uint
		if err := tx.Model(&quizModel.QuestionModel{}).
			Where("question_course_id = ?", courseID).
			Pluck("question_id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("choice_question_id IN ?", questionIDs).
				Delete(&quizModel.ChoiceModel{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("question_course_id = ?", courseID).
			Delete(&quizModel.QuestionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attempt_course_id = ?", courseID).
			Delete(&quizModel.AttemptModel{}).Error; err != nil {
			return err
		}

		if err := tx.Where("exercise_submission_course_id = ?", courseID).
			Delete(&exerciseModel.ExerciseSubmissionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exercise_course_id = ?", courseID).
			Delete(&exerciseModel.ExerciseModel{}).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_item_course_id = ?", courseID).
			Delete(&cartModel.CartItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("enrollment_course_id = ?", courseID).
			Delete(&enrollModel.EnrollmentModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&course).Error
	})
}

// Popular: course dengan pendaftar terbanyak (termasuk yang nol pendaftar).
func Popular(db *gorm.DB, limit int) ([]courseModel.CourseModel, error) {
	var courses []courseModel.CourseModel
	err := db.Model(&courseModel.CourseModel{}).
		Select("courses.*, COUNT(enrollments.enrollment_id) AS enrollment_count").
		Joins("LEFT JOIN enrollments ON enrollments.enrollment_course_id = courses.course_id").
		Group("courses.course_id").
		Order("enrollment_count DESC").
		Limit(limit).
		Preload("CourseInstructor").
		Find(&courses).Error
	return courses, err
}

// Newest: course terbaru berdasarkan id.
func Newest(db *gorm.DB, limit int) ([]courseModel.CourseModel, error) {
	var courses []courseModel.CourseModel
	err := db.Order("course_id DESC").
		Limit(limit).
		Preload("CourseInstructor").
		Find(&courses).Error
	return courses, err
}
