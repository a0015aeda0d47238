package model

import "time"

type QuestionModel struct {
	QuestionID       uint   `gorm:"column:question_id;primaryKey;autoIncrement" json:"question_id"`
	QuestionCourseID uint   `gorm:"column:question_course_id;not null;index" json:"question_course_id"`
	QuestionText     string `gorm:"column:question_text;type:text;not null" json:"question_text"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (QuestionModel) TableName() string {
	return "questions"
}

type ChoiceModel struct {
	ChoiceID         uint   `gorm:"column:choice_id;primaryKey;autoIncrement" json:"choice_id"`
	ChoiceQuestionID uint   `gorm:"column:choice_question_id;not null;index" json:"choice_question_id"`
	ChoiceText       string `gorm:"column:choice_text;size:255;not null" json:"choice_text"`
	ChoiceIsCorrect  bool   `gorm:"column:choice_is_correct;not null;default:false" json:"choice_is_correct"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ChoiceModel) TableName() string {
	return "choices"
}
