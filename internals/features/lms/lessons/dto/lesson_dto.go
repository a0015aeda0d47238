package dto

import (
	"time"

	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
)

type LessonRequest struct {
	Title    string `json:"lesson_title" validate:"required,max=200"`
	Content  string `json:"lesson_content"`
	Category string `json:"lesson_category" validate:"required,oneof=text video meeting"`

	VideoURL   string `json:"lesson_video_url" validate:"omitempty,url,max=500"`
	MeetingURL string `json:"lesson_meeting_url" validate:"omitempty,url,max=500"`

	StartDate *time.Time `json:"lesson_start_date"`
}

func (r *LessonRequest) ToModel(courseID uint) *lessonModel.LessonModel {
	m := &lessonModel.LessonModel{
		LessonCourseID:   courseID,
		LessonTitle:      r.Title,
		LessonContent:    r.Content,
		LessonVideoURL:   r.VideoURL,
		LessonMeetingURL: r.MeetingURL,
		LessonStartDate:  r.StartDate,
	}
	m.ApplyCategory(r.Category)
	return m
}
