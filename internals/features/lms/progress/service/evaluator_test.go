package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
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
		&lessonModel.LessonModel{},
		&lessonModel.LessonProgressModel{},
		&quizModel.QuestionModel{},
		&quizModel.AttemptModel{},
		&exerciseModel.ExerciseModel{},
		&exerciseModel.ExerciseSubmissionModel{},
	))
	return db
}

func addLesson(t *testing.T, db *gorm.DB, courseID uint, title string) uint {
	t.Helper()
	l := lessonModel.LessonModel{LessonCourseID: courseID, LessonTitle: title}
	require.NoError(t, db.Create(&l).Error)
	return l.LessonID
}

func completeLesson(t *testing.T, db *gorm.DB, userID, lessonID uint) {
	t.Helper()
	require.NoError(t, db.Create(&lessonModel.LessonProgressModel{
		LessonProgressUserID:   userID,
		LessonProgressLessonID: lessonID,
	}).Error)
}

func TestEvaluateCourseWithoutComponents(t *testing.T) {
	db := newTestDB(t)

	c, err := Evaluate(db, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 0, c.Total)
	require.Equal(t, 0, c.Completed)
	require.Equal(t, 0, c.Percent)
}

func TestEvaluateOnlyCountsExistingComponents(t *testing.T) {
	db := newTestDB(t)

	// Course 10 hanya punya materi, tanpa kuis dan latihan.
	l1 := addLesson(t, db, 10, "Pengenalan")
	l2 := addLesson(t, db, 10, "Instalasi")
	completeLesson(t, db, 1, l1)

	c, err := Evaluate(db, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, c.Total)
	require.Equal(t, 0, c.Completed)
	require.Equal(t, 0, c.Percent)
	require.Equal(t, 1, c.LessonsDone)
	require.Equal(t, 2, c.LessonsTotal)

	completeLesson(t, db, 1, l2)

	c, err = Evaluate(db, 1, 10)
	require.NoError(t, err)
	require.True(t, c.LessonsCompleted)
	require.Equal(t, 100, c.Percent)
}

func TestEvaluatePercentTruncates(t *testing.T) {
	db := newTestDB(t)

	// Tiga komponen: materi selesai, kuis belum, latihan belum dinilai.
	l1 := addLesson(t, db, 10, "Materi")
	completeLesson(t, db, 1, l1)

	require.NoError(t, db.Create(&quizModel.QuestionModel{
		QuestionCourseID: 10, QuestionText: "1+1?",
	}).Error)
	require.NoError(t, db.Create(&exerciseModel.ExerciseModel{
		ExerciseCourseID: 10, ExerciseName: "Latihan akhir",
	}).Error)

	c, err := Evaluate(db, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 3, c.Total)
	require.Equal(t, 1, c.Completed)
	require.Equal(t, 33, c.Percent) // 1/3 dibulatkan ke bawah
}

func TestEvaluateQuizUsesLatestAttempt(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&quizModel.QuestionModel{
		QuestionCourseID: 10, QuestionText: "Soal",
	}).Error)
	require.NoError(t, db.Create(&quizModel.AttemptModel{
		AttemptUserID: 1, AttemptCourseID: 10, AttemptScore: 100, AttemptPassed: true,
	}).Error)
	require.NoError(t, db.Create(&quizModel.AttemptModel{
		AttemptUserID: 1, AttemptCourseID: 10, AttemptScore: 50,
	}).Error)

	c, err := Evaluate(db, 1, 10)
	require.NoError(t, err)
	require.False(t, c.QuizPerfect, "attempt terbaru (50) yang dipakai")
}

func TestEvaluateExerciseNeedsScore(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&exerciseModel.ExerciseModel{
		ExerciseCourseID: 10, ExerciseName: "Latihan",
	}).Error)
	require.NoError(t, db.Create(&exerciseModel.ExerciseSubmissionModel{
		ExerciseSubmissionUserID:   1,
		ExerciseSubmissionCourseID: 10,
		ExerciseSubmissionURL:      "https://github.com/student/tugas",
	}).Error)

	c, err := Evaluate(db, 1, 10)
	require.NoError(t, err)
	require.False(t, c.ExerciseScored, "submission tanpa skor belum dihitung")

	score := 85
	require.NoError(t, db.Model(&exerciseModel.ExerciseSubmissionModel{}).
		Where("exercise_submission_user_id = ?", 1).
		Update("exercise_submission_score", &score).Error)

	c, err = Evaluate(db, 1, 10)
	require.NoError(t, err)
	require.True(t, c.ExerciseScored)
	require.Equal(t, 100, c.Percent)
}

func TestLessonPercentTruncates(t *testing.T) {
	db := newTestDB(t)

	ids := []uint{
		addLesson(t, db, 10, "A"),
		addLesson(t, db, 10, "B"),
		addLesson(t, db, 10, "C"),
	}
	completeLesson(t, db, 1, ids[0])
	completeLesson(t, db, 1, ids[1])

	pct, err := LessonPercent(db, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 66, pct)

	pct, err = LessonPercent(db, 1, 99)
	require.NoError(t, err)
	require.Equal(t, 0, pct)
}
