package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/faaiqa01/course-online-nm-rbd/internals/configs"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&quizModel.QuestionModel{},
		&quizModel.ChoiceModel{},
		&quizModel.AttemptModel{},
	))
	return db
}

func choices(correctIdx int, n int) []ChoiceInput {
	out := make([]ChoiceInput, n)
	for i := range out {
		out[i] = ChoiceInput{Text: "Pilihan", IsCorrect: i == correctIdx}
	}
	return out
}

func TestValidateChoices(t *testing.T) {
	cases := []struct {
		name    string
		choices []ChoiceInput
		wantErr error
	}{
		{"valid dua pilihan", choices(0, 2), nil},
		{"valid lima pilihan", choices(4, 5), nil},
		{"kurang dari dua", choices(0, 1), ErrChoiceCountRange},
		{"lebih dari lima", choices(0, 6), ErrChoiceCountRange},
		{"tanpa jawaban benar", choices(-1, 3), ErrNoCorrectChoice},
		{"dua jawaban benar", append(choices(0, 2), ChoiceInput{Text: "X", IsCorrect: true}), ErrTooManyCorrect},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateChoices(tc.choices)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestCreateQuestionRejectsBadChoices(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateQuestion(db, 10, "Soal", choices(-1, 3))
	require.ErrorIs(t, err, ErrNoCorrectChoice)

	var count int64
	require.NoError(t, db.Model(&quizModel.QuestionModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateQuestionReplacesChoices(t *testing.T) {
	db := newTestDB(t)

	q, err := CreateQuestion(db, 10, "Soal", choices(0, 4))
	require.NoError(t, err)

	require.NoError(t, UpdateQuestion(db, q.QuestionID, "Soal revisi", choices(1, 3)))

	var stored []quizModel.ChoiceModel
	require.NoError(t, db.Where("choice_question_id = ?", q.QuestionID).
		Order("choice_id ASC").Find(&stored).Error)
	require.Len(t, stored, 3)
	require.False(t, stored[0].ChoiceIsCorrect)
	require.True(t, stored[1].ChoiceIsCorrect)
}

func seedQuiz(t *testing.T, db *gorm.DB, courseID uint, questions int) map[uint]uint {
	t.Helper()
	correctByQuestion := make(map[uint]uint, questions)
	for i := 0; i < questions; i++ {
		q, err := CreateQuestion(db, courseID, "Soal", choices(0, 4))
		require.NoError(t, err)
		var correct quizModel.ChoiceModel
		require.NoError(t, db.Where("choice_question_id = ? AND choice_is_correct = ?", q.QuestionID, true).
			First(&correct).Error)
		correctByQuestion[q.QuestionID] = correct.ChoiceID
	}
	return correctByQuestion
}

func TestGradeTruncatesScore(t *testing.T) {
	db := newTestDB(t)
	correct := seedQuiz(t, db, 10, 4)

	answers := make(map[uint]uint)
	n := 0
	for qid, cid := range correct {
		if n == 3 {
			break
		}
		answers[qid] = cid
		n++
	}

	score, passed, err := Grade(db, 10, answers)
	require.NoError(t, err)
	require.Equal(t, 75, score)
	require.True(t, passed)
}

func TestGradeIgnoresForeignChoice(t *testing.T) {
	db := newTestDB(t)
	correct := seedQuiz(t, db, 10, 2)
	foreign := seedQuiz(t, db, 20, 1)

	var foreignChoiceID uint
	for _, cid := range foreign {
		foreignChoiceID = cid
	}

	answers := make(map[uint]uint)
	first := true
	for qid, cid := range correct {
		if first {
			// Jawaban memakai choice milik course lain: dihitung salah.
			answers[qid] = foreignChoiceID
			first = false
			continue
		}
		answers[qid] = cid
	}

	score, passed, err := Grade(db, 10, answers)
	require.NoError(t, err)
	require.Equal(t, 50, score)
	require.False(t, passed)
}

func TestGradeEmptyQuiz(t *testing.T) {
	db := newTestDB(t)
	_, _, err := Grade(db, 10, map[uint]uint{})
	require.ErrorIs(t, err, ErrQuizEmpty)
}

func TestCanTakeEnforcesWindow(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	course := &courseModel.CourseModel{CourseID: 10, CourseQuizStartDate: &later}
	require.ErrorIs(t, CanTake(db, 1, 10, false, course, now), ErrQuizNotOpen)

	course = &courseModel.CourseModel{CourseID: 10, CourseQuizEndDate: &earlier}
	require.ErrorIs(t, CanTake(db, 1, 10, false, course, now), ErrQuizClosed)

	course = &courseModel.CourseModel{CourseID: 10, CourseQuizStartDate: &earlier, CourseQuizEndDate: &later}
	require.NoError(t, CanTake(db, 1, 10, false, course, now))
}

func TestSubmitQuizSingleAttemptForStudents(t *testing.T) {
	db := newTestDB(t)
	correct := seedQuiz(t, db, 10, 2)
	course := &courseModel.CourseModel{CourseID: 10}

	attempt, err := SubmitQuiz(db, 1, 10, false, course, correct)
	require.NoError(t, err)
	require.Equal(t, 100, attempt.AttemptScore)
	require.True(t, attempt.AttemptPassed)

	_, err = SubmitQuiz(db, 1, 10, false, course, correct)
	require.ErrorIs(t, err, ErrAlreadyAttempted)
}

func TestSubmitQuizInstructorExempt(t *testing.T) {
	db := newTestDB(t)
	correct := seedQuiz(t, db, 10, 2)
	course := &courseModel.CourseModel{CourseID: 10}

	orig := configs.QuizSingleAttemptForInstructors
	configs.QuizSingleAttemptForInstructors = false
	t.Cleanup(func() { configs.QuizSingleAttemptForInstructors = orig })

	for i := 0; i < 2; i++ {
		_, err := SubmitQuiz(db, 2, 10, true, course, correct)
		require.NoError(t, err)
	}

	configs.QuizSingleAttemptForInstructors = true
	_, err := SubmitQuiz(db, 2, 10, true, course, correct)
	require.ErrorIs(t, err, ErrAlreadyAttempted)
}

func TestLatestAttempt(t *testing.T) {
	db := newTestDB(t)

	got, err := LatestAttempt(db, 1, 10)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, db.Create(&quizModel.AttemptModel{
		AttemptUserID: 1, AttemptCourseID: 10, AttemptScore: 40,
	}).Error)
	require.NoError(t, db.Create(&quizModel.AttemptModel{
		AttemptUserID: 1, AttemptCourseID: 10, AttemptScore: 80, AttemptPassed: true,
	}).Error)

	got, err = LatestAttempt(db, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 80, got.AttemptScore)
}
