package model

import "time"

// Ambang lulus kuis. Sertifikat tetap menuntut skor 100, bukan sekadar lulus.
const PassingScore = 60

// AttemptModel: satu snapshot penilaian submit kuis.
type AttemptModel struct {
	AttemptID       uint `gorm:"column:attempt_id;primaryKey;autoIncrement" json:"attempt_id"`
	AttemptUserID   uint `gorm:"column:attempt_user_id;not null;index:idx_attempts_user_course" json:"attempt_user_id"`
	AttemptCourseID uint `gorm:"column:attempt_course_id;not null;index:idx_attempts_user_course" json:"attempt_course_id"`

	AttemptScore  int  `gorm:"column:attempt_score;not null;default:0" json:"attempt_score"`
	AttemptPassed bool `gorm:"column:attempt_passed;not null;default:false" json:"attempt_passed"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AttemptModel) TableName() string {
	return "attempts"
}
