package model

import (
	"time"

	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
)

// CartItemModel hanya bermakna untuk course premium; dihapus saat checkout
// atau saat pembayaran settle.
type CartItemModel struct {
	CartItemID       uint `gorm:"column:cart_item_id;primaryKey;autoIncrement" json:"cart_item_id"`
	CartItemUserID   uint `gorm:"column:cart_item_user_id;not null;uniqueIndex:uq_cart_items_user_course" json:"cart_item_user_id"`
	CartItemCourseID uint `gorm:"column:cart_item_course_id;not null;uniqueIndex:uq_cart_items_user_course" json:"cart_item_course_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	CartItemCourse *courseModel.CourseModel `gorm:"foreignKey:CartItemCourseID;references:CourseID" json:"course,omitempty"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}
