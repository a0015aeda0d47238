package service

import (
	"errors"

	"gorm.io/gorm"

	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
)

var ErrLessonNotInCourse = errors.New("lesson tidak ditemukan pada course ini")

// CompleteLesson mencatat penyelesaian lesson; idempotent, penyelesaian
// yang sudah ada tidak dianggap error.
func CompleteLesson(db *gorm.DB, userID, courseID, lessonID uint) (created bool, err error) {
	var lesson lessonModel.LessonModel
	if err := db.Where("lesson_id = ? AND lesson_course_id = ?", lessonID, courseID).
		First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrLessonNotInCourse
		}
		return false, err
	}

	var existing lessonModel.LessonProgressModel
	err = db.Where("lesson_progress_user_id = ? AND lesson_progress_lesson_id = ?", userID, lessonID).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	progress := lessonModel.LessonProgressModel{
		LessonProgressUserID:   userID,
		LessonProgressLessonID: lessonID,
	}
	if err := db.Create(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
