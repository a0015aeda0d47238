package dto

import (
	"time"

	quizService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/service"
)

type QuestionRequest struct {
	Text    string                    `json:"question_text" validate:"required"`
	Choices []quizService.ChoiceInput `json:"choices" validate:"required,min=2,max=5,dive"`
}

type QuizDatesRequest struct {
	StartDate *time.Time `json:"quiz_start_date"`
	EndDate   *time.Time `json:"quiz_end_date"`
}

type SubmitQuizRequest struct {
	// {question_id: choice_id}
	Answers map[uint]uint `json:"answers" validate:"required"`
}

// Pilihan tanpa flag kebenaran, untuk siswa yang sedang mengerjakan.
type ChoiceView struct {
	ChoiceID uint   `json:"choice_id"`
	Text     string `json:"choice_text"`
}

type QuestionView struct {
	QuestionID uint         `json:"question_id"`
	Text       string       `json:"question_text"`
	Choices    []ChoiceView `json:"choices"`
}
