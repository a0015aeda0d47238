package dto

import (
	"time"

	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	progressService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/progress/service"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
)

type CourseCreateRequest struct {
	Title        string  `json:"course_title" validate:"required,max=200"`
	Description  string  `json:"course_description"`
	IsPremium    bool    `json:"course_is_premium"`
	Price        int     `json:"course_price" validate:"min=0"`
	MaterialType *string `json:"course_material_type" validate:"omitempty,max=100"`
	Thumbnail    string  `json:"course_thumbnail_path" validate:"omitempty,max=500"`
}

type CourseUpdateRequest = CourseCreateRequest

func (r *CourseCreateRequest) ToModel(instructorID uint) *courseModel.CourseModel {
	m := &courseModel.CourseModel{
		CourseTitle:         r.Title,
		CourseDescription:   r.Description,
		CourseIsPremium:     r.IsPremium,
		CoursePrice:         r.Price,
		CourseInstructorID:  instructorID,
		CourseMaterialType:  r.MaterialType,
		CourseThumbnailPath: r.Thumbnail,
	}
	m.NormalizePrice()
	return m
}

type CourseResponse struct {
	CourseID       uint       `json:"course_id"`
	Title          string     `json:"course_title"`
	Description    string     `json:"course_description"`
	IsPremium      bool       `json:"course_is_premium"`
	Price          int        `json:"course_price"`
	InstructorID   uint       `json:"course_instructor_id"`
	InstructorName string     `json:"course_instructor_name,omitempty"`
	MaterialType   *string    `json:"course_material_type,omitempty"`
	Thumbnail      string     `json:"course_thumbnail_path,omitempty"`
	QuizStartDate  *time.Time `json:"course_quiz_start_date,omitempty"`
	QuizEndDate    *time.Time `json:"course_quiz_end_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToCourseResponse(m *courseModel.CourseModel) CourseResponse {
	resp := CourseResponse{
		CourseID:      m.CourseID,
		Title:         m.CourseTitle,
		Description:   m.CourseDescription,
		IsPremium:     m.CourseIsPremium,
		Price:         m.CoursePrice,
		InstructorID:  m.CourseInstructorID,
		MaterialType:  m.CourseMaterialType,
		Thumbnail:     m.CourseThumbnailPath,
		QuizStartDate: m.CourseQuizStartDate,
		QuizEndDate:   m.CourseQuizEndDate,
		CreatedAt:     m.CreatedAt,
	}
	if m.CourseInstructor != nil {
		resp.InstructorName = m.CourseInstructor.UserName
	}
	return resp
}

func ToCourseResponses(ms []courseModel.CourseModel) []CourseResponse {
	out := make([]CourseResponse, 0, len(ms))
	for i := range ms {
		out = append(out, ToCourseResponse(&ms[i]))
	}
	return out
}

// MyCourseResponse: course terdaftar + persen penyelesaian lesson-nya.
type MyCourseResponse struct {
	CourseResponse
	Unlocked      bool `json:"unlocked"`
	LessonPercent int  `json:"lesson_percent"`
}

type LessonWithStatus struct {
	lessonModel.LessonModel
	IsCompleted bool `json:"is_completed"`
}

// CourseDetailResponse: payload halaman detail course — daftar lesson dengan
// status selesai, potret progress, status akses, flag keranjang, attempt
// terakhir, plus latihan & submission-nya.
type CourseDetailResponse struct {
	Course   CourseResponse             `json:"course"`
	Lessons  []LessonWithStatus         `json:"lessons"`
	Progress progressService.Components `json:"progress"`

	Enrolled bool `json:"enrolled"`
	Unlocked bool `json:"unlocked"`
	InCart   bool `json:"in_cart"`

	QuestionCount int                    `json:"question_count"`
	LatestAttempt *quizModel.AttemptModel `json:"latest_attempt,omitempty"`

	Exercise           *exerciseModel.ExerciseModel           `json:"exercise,omitempty"`
	ExerciseSubmission *exerciseModel.ExerciseSubmissionModel `json:"exercise_submission,omitempty"`
}

// HomeResponse: kursus terpopuler (pendaftar terbanyak) dan terbaru.
type HomeResponse struct {
	Popular []CourseResponse `json:"popular_courses"`
	Newest  []CourseResponse `json:"newest_courses"`
}
