package model

import "time"

// EnrollmentModel: satu baris per (user, course). Untuk course gratis nilai
// unlocked yang tersimpan diabaikan — akses selalu dianggap terbuka.
type EnrollmentModel struct {
	EnrollmentID       uint `gorm:"column:enrollment_id;primaryKey;autoIncrement" json:"enrollment_id"`
	EnrollmentUserID   uint `gorm:"column:enrollment_user_id;not null;uniqueIndex:uq_enrollments_user_course" json:"enrollment_user_id"`
	EnrollmentCourseID uint `gorm:"column:enrollment_course_id;not null;uniqueIndex:uq_enrollments_user_course" json:"enrollment_course_id"`

	EnrollmentUnlocked bool `gorm:"column:enrollment_unlocked;not null;default:false" json:"enrollment_unlocked"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (EnrollmentModel) TableName() string {
	return "enrollments"
}
