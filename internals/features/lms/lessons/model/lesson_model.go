package model

import "time"

// Kategori lesson menentukan field konten yang terisi; yang lain dikosongkan.
const (
	LessonCategoryText    = "text"
	LessonCategoryVideo   = "video"
	LessonCategoryMeeting = "meeting"
)

type LessonModel struct {
	LessonID       uint   `gorm:"column:lesson_id;primaryKey;autoIncrement" json:"lesson_id"`
	LessonCourseID uint   `gorm:"column:lesson_course_id;not null;index" json:"lesson_course_id"`
	LessonTitle    string `gorm:"column:lesson_title;size:200;not null" json:"lesson_title"`
	LessonContent  string `gorm:"column:lesson_content;type:text" json:"lesson_content"`

	LessonVideoURL   string `gorm:"column:lesson_video_url;size:500;default:''" json:"lesson_video_url"`
	LessonMeetingURL string `gorm:"column:lesson_meeting_url;size:500;default:''" json:"lesson_meeting_url"`

	LessonStartDate *time.Time `gorm:"column:lesson_start_date" json:"lesson_start_date,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (LessonModel) TableName() string {
	return "lessons"
}

// ApplyCategory mengosongkan URL yang tidak sesuai kategori (video/meeting
// saling eksklusif; selain itu dua-duanya kosong).
func (m *LessonModel) ApplyCategory(category string) {
	switch category {
	case LessonCategoryVideo:
		m.LessonMeetingURL = ""
	case LessonCategoryMeeting:
		m.LessonVideoURL = ""
	default:
		m.LessonVideoURL = ""
		m.LessonMeetingURL = ""
	}
}
