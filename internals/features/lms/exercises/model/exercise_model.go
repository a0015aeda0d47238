package model

import "time"

// ExerciseModel: maksimal satu latihan per course (unique course_id).
type ExerciseModel struct {
	ExerciseID          uint   `gorm:"column:exercise_id;primaryKey;autoIncrement" json:"exercise_id"`
	ExerciseCourseID    uint   `gorm:"column:exercise_course_id;not null;unique" json:"exercise_course_id"`
	ExerciseName        string `gorm:"column:exercise_name;size:200;not null" json:"exercise_name"`
	ExerciseDescription string `gorm:"column:exercise_description;type:text" json:"exercise_description"`
	ExerciseURL         string `gorm:"column:exercise_url;size:500;default:''" json:"exercise_url"`

	ExerciseStartDate *time.Time `gorm:"column:exercise_start_date" json:"exercise_start_date,omitempty"`
	ExerciseEndDate   *time.Time `gorm:"column:exercise_end_date" json:"exercise_end_date,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ExerciseModel) TableName() string {
	return "exercises"
}

// ExerciseSubmissionModel: satu submission per (user, course); URL tidak bisa
// diedit setelah dikirim. Skor diisi belakangan oleh instructor (nullable).
type ExerciseSubmissionModel struct {
	ExerciseSubmissionID       uint   `gorm:"column:exercise_submission_id;primaryKey;autoIncrement" json:"exercise_submission_id"`
	ExerciseSubmissionUserID   uint   `gorm:"column:exercise_submission_user_id;not null;uniqueIndex:uq_exercise_submissions_user_course" json:"exercise_submission_user_id"`
	ExerciseSubmissionCourseID uint   `gorm:"column:exercise_submission_course_id;not null;uniqueIndex:uq_exercise_submissions_user_course" json:"exercise_submission_course_id"`
	ExerciseSubmissionURL      string `gorm:"column:exercise_submission_url;size:500;not null" json:"exercise_submission_url"`

	ExerciseSubmissionScore *int `gorm:"column:exercise_submission_score" json:"exercise_submission_score,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ExerciseSubmissionModel) TableName() string {
	return "exercise_submissions"
}
