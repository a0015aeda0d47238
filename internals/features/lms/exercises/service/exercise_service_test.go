package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&exerciseModel.ExerciseModel{},
		&exerciseModel.ExerciseSubmissionModel{},
	))
	return db
}

func TestUpsertExerciseCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)

	first, err := UpsertExercise(db, 10, ExerciseInput{
		Name: "Latihan akhir", URL: "https://classroom.example.com/tugas",
	})
	require.NoError(t, err)

	second, err := UpsertExercise(db, 10, ExerciseInput{
		Name: "Latihan akhir (revisi)", URL: "https://classroom.example.com/tugas-v2",
	})
	require.NoError(t, err)
	require.Equal(t, first.ExerciseID, second.ExerciseID, "satu course satu exercise")
	require.Equal(t, "Latihan akhir (revisi)", second.ExerciseName)

	var count int64
	require.NoError(t, db.Model(&exerciseModel.ExerciseModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSubmitExerciseOncePerCourse(t *testing.T) {
	db := newTestDB(t)

	_, err := SubmitExercise(db, 1, 10, "https://github.com/student/tugas")
	require.ErrorIs(t, err, ErrNoExercise)

	_, err = UpsertExercise(db, 10, ExerciseInput{Name: "Latihan"})
	require.NoError(t, err)

	sub, err := SubmitExercise(db, 1, 10, "https://github.com/student/tugas")
	require.NoError(t, err)
	require.Nil(t, sub.ExerciseSubmissionScore)

	_, err = SubmitExercise(db, 1, 10, "https://github.com/student/tugas-lain")
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSetScore(t *testing.T) {
	db := newTestDB(t)
	_, err := UpsertExercise(db, 10, ExerciseInput{Name: "Latihan"})
	require.NoError(t, err)

	_, err = SetScore(db, 1, 10, 85)
	require.ErrorIs(t, err, ErrNoSubmission)

	_, err = SubmitExercise(db, 1, 10, "https://github.com/student/tugas")
	require.NoError(t, err)

	for _, bad := range []int{-1, 101} {
		_, err = SetScore(db, 1, 10, bad)
		require.ErrorIs(t, err, ErrScoreOutOfRange)
	}

	sub, err := SetScore(db, 1, 10, 85)
	require.NoError(t, err)
	require.NotNil(t, sub.ExerciseSubmissionScore)
	require.Equal(t, 85, *sub.ExerciseSubmissionScore)

	// Skor boleh dinilai ulang.
	sub, err = SetScore(db, 1, 10, 100)
	require.NoError(t, err)
	require.Equal(t, 100, *sub.ExerciseSubmissionScore)
}
