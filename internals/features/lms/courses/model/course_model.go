package model

import (
	"time"

	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
)

type CourseModel struct {
	CourseID          uint   `gorm:"column:course_id;primaryKey;autoIncrement" json:"course_id"`
	CourseTitle       string `gorm:"column:course_title;size:200;not null" json:"course_title"`
	CourseDescription string `gorm:"column:course_description;type:text" json:"course_description"`
	CourseIsPremium   bool   `gorm:"column:course_is_premium;not null;default:false" json:"course_is_premium"`

	// Harga hanya bermakna untuk course premium; di-nol-kan saat premium=false.
	CoursePrice int `gorm:"column:course_price;not null;default:0" json:"course_price"`

	CourseInstructorID uint                 `gorm:"column:course_instructor_id;not null;index" json:"course_instructor_id"`
	CourseInstructor   *userModel.UserModel `gorm:"foreignKey:CourseInstructorID;references:UserID" json:"course_instructor,omitempty"`

	CourseThumbnailPath string  `gorm:"column:course_thumbnail_path;size:500;default:''" json:"course_thumbnail_path"`
	CourseMaterialType  *string `gorm:"column:course_material_type;size:100" json:"course_material_type,omitempty"`

	CourseQuizStartDate *time.Time `gorm:"column:course_quiz_start_date" json:"course_quiz_start_date,omitempty"`
	CourseQuizEndDate   *time.Time `gorm:"column:course_quiz_end_date" json:"course_quiz_end_date,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CourseModel) TableName() string {
	return "courses"
}

// NormalizePrice menegakkan invariant harga: course gratis selalu berharga 0.
func (m *CourseModel) NormalizePrice() {
	if !m.CourseIsPremium {
		m.CoursePrice = 0
	}
}
