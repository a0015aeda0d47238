package model

import "time"

// LessonProgressModel menandai lesson selesai; write-once, tidak ada operasi
// un-complete.
type LessonProgressModel struct {
	LessonProgressID       uint `gorm:"column:lesson_progress_id;primaryKey;autoIncrement" json:"lesson_progress_id"`
	LessonProgressUserID   uint `gorm:"column:lesson_progress_user_id;not null;uniqueIndex:uq_lesson_progress_user_lesson" json:"lesson_progress_user_id"`
	LessonProgressLessonID uint `gorm:"column:lesson_progress_lesson_id;not null;uniqueIndex:uq_lesson_progress_user_lesson" json:"lesson_progress_lesson_id"`

	LessonProgressCompletedAt time.Time `gorm:"column:lesson_progress_completed_at;autoCreateTime" json:"lesson_progress_completed_at"`
}

func (LessonProgressModel) TableName() string {
	return "lesson_progress"
}
