package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
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
		&enrollModel.EnrollmentModel{},
		&lessonModel.LessonModel{},
		&lessonModel.LessonProgressModel{},
		&quizModel.QuestionModel{},
		&quizModel.AttemptModel{},
		&exerciseModel.ExerciseModel{},
		&exerciseModel.ExerciseSubmissionModel{},
	))
	return db
}

// seedPassingState membuat user 1 memenuhi semua syarat di course 10:
// terdaftar, latihan dinilai, attempt terakhir 100, semua materi selesai.
func seedPassingState(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&enrollModel.EnrollmentModel{
		EnrollmentUserID: 1, EnrollmentCourseID: 10, EnrollmentUnlocked: true,
	}).Error)

	lesson := lessonModel.LessonModel{LessonCourseID: 10, LessonTitle: "Materi"}
	require.NoError(t, db.Create(&lesson).Error)
	require.NoError(t, db.Create(&lessonModel.LessonProgressModel{
		LessonProgressUserID: 1, LessonProgressLessonID: lesson.LessonID,
	}).Error)

	require.NoError(t, db.Create(&quizModel.QuestionModel{
		QuestionCourseID: 10, QuestionText: "Soal",
	}).Error)
	require.NoError(t, db.Create(&quizModel.AttemptModel{
		AttemptUserID: 1, AttemptCourseID: 10, AttemptScore: 100, AttemptPassed: true,
	}).Error)

	require.NoError(t, db.Create(&exerciseModel.ExerciseModel{
		ExerciseCourseID: 10, ExerciseName: "Latihan",
	}).Error)
	score := 90
	require.NoError(t, db.Create(&exerciseModel.ExerciseSubmissionModel{
		ExerciseSubmissionUserID:   1,
		ExerciseSubmissionCourseID: 10,
		ExerciseSubmissionURL:      "https://github.com/student/tugas",
		ExerciseSubmissionScore:    &score,
	}).Error)
}

func TestEligibilityAllRequirementsMet(t *testing.T) {
	db := newTestDB(t)
	seedPassingState(t, db)

	out, err := CheckEligibility(db, 1, 10)
	require.NoError(t, err)
	require.True(t, out.Eligible)
	require.Empty(t, out.Reason)
	require.Empty(t, out.Notice)
}

func TestEligibilityRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)

	out, err := CheckEligibility(db, 1, 10)
	require.NoError(t, err)
	require.False(t, out.Eligible)
	require.Equal(t, reasonNotEnrolled, out.Reason)
}

func TestEligibilityRequiresScoredExercise(t *testing.T) {
	db := newTestDB(t)
	seedPassingState(t, db)
	require.NoError(t, db.Model(&exerciseModel.ExerciseSubmissionModel{}).
		Where("exercise_submission_user_id = ?", 1).
		Update("exercise_submission_score", nil).Error)

	out, err := CheckEligibility(db, 1, 10)
	require.NoError(t, err)
	require.False(t, out.Eligible)
	require.Equal(t, reasonExerciseScore, out.Reason)
}

func TestEligibilityNoticeWhenCourseHasNoExercise(t *testing.T) {
	db := newTestDB(t)
	seedPassingState(t, db)
	require.NoError(t, db.Where("exercise_course_id = ?", 10).
		Delete(&exerciseModel.ExerciseModel{}).Error)

	out, err := CheckEligibility(db, 1, 10)
	require.NoError(t, err)
	require.True(t, out.Eligible)
	require.Equal(t, noticeNoExercise, out.Notice)
}

func TestEligibilityRequiresPerfectLatestAttempt(t *testing.T) {
	db := newTestDB(t)
	seedPassingState(t, db)
	// Attempt baru dengan skor lebih rendah menggeser attempt 100.
	require.NoError(t, db.Create(&quizModel.AttemptModel{
		AttemptUserID: 1, AttemptCourseID: 10, AttemptScore: 75, AttemptPassed: true,
	}).Error)

	out, err := CheckEligibility(db, 1, 10)
	require.NoError(t, err)
	require.False(t, out.Eligible)
	require.Equal(t, reasonQuizNotPerfect, out.Reason)
}

func TestEligibilityRequiresAllLessonsDone(t *testing.T) {
	db := newTestDB(t)
	seedPassingState(t, db)
	require.NoError(t, db.Create(&lessonModel.LessonModel{
		LessonCourseID: 10, LessonTitle: "Materi tambahan",
	}).Error)

	out, err := CheckEligibility(db, 1, 10)
	require.NoError(t, err)
	require.False(t, out.Eligible)
	require.Equal(t, reasonLessonsNotDone, out.Reason)
}

func TestEligibilityChecksExerciseBeforeQuiz(t *testing.T) {
	db := newTestDB(t)
	seedPassingState(t, db)
	// Dua syarat gagal sekaligus; alasan yang muncul harus latihan.
	require.NoError(t, db.Where("exercise_submission_user_id = ?", 1).
		Delete(&exerciseModel.ExerciseSubmissionModel{}).Error)
	require.NoError(t, db.Create(&quizModel.AttemptModel{
		AttemptUserID: 1, AttemptCourseID: 10, AttemptScore: 40,
	}).Error)

	out, err := CheckEligibility(db, 1, 10)
	require.NoError(t, err)
	require.False(t, out.Eligible)
	require.Equal(t, reasonExerciseScore, out.Reason)
}
