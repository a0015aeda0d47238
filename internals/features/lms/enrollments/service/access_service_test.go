package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
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
		&courseModel.CourseModel{},
		&enrollModel.EnrollmentModel{},
		&cartModel.CartItemModel{},
		&lessonModel.LessonModel{},
		&lessonModel.LessonProgressModel{},
		&quizModel.AttemptModel{},
		&exerciseModel.ExerciseSubmissionModel{},
	))
	return db
}

func freeCourse() *courseModel.CourseModel {
	return &courseModel.CourseModel{CourseID: 10, CourseTitle: "Gratis"}
}

func premiumCourse() *courseModel.CourseModel {
	return &courseModel.CourseModel{CourseID: 20, CourseTitle: "Premium", CourseIsPremium: true, CoursePrice: 150000}
}

func TestCanAccessAnonymous(t *testing.T) {
	db := newTestDB(t)

	access, err := CanAccess(db, 0, freeCourse())
	require.NoError(t, err)
	require.False(t, access.Enrolled)
	require.False(t, access.Unlocked)
}

func TestCanAccessFreeCourseIgnoresStoredLock(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&enrollModel.EnrollmentModel{
		EnrollmentUserID: 1, EnrollmentCourseID: 10, EnrollmentUnlocked: false,
	}).Error)

	access, err := CanAccess(db, 1, freeCourse())
	require.NoError(t, err)
	require.True(t, access.Enrolled)
	require.True(t, access.Unlocked, "course gratis selalu terbuka untuk yang terdaftar")
}

func TestCanAccessPremiumHonorsLock(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&enrollModel.EnrollmentModel{
		EnrollmentUserID: 1, EnrollmentCourseID: 20, EnrollmentUnlocked: false,
	}).Error)

	access, err := CanAccess(db, 1, premiumCourse())
	require.NoError(t, err)
	require.True(t, access.Enrolled)
	require.False(t, access.Unlocked)
}

func TestEnrollFreeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	course := freeCourse()

	outcome, err := EnrollFree(db, 1, course)
	require.NoError(t, err)
	require.Equal(t, EnrollCreated, outcome)

	outcome, err = EnrollFree(db, 1, course)
	require.NoError(t, err)
	require.Equal(t, EnrollAlreadyEnrolled, outcome)

	var count int64
	require.NoError(t, db.Model(&enrollModel.EnrollmentModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestEnrollFreeRejectsPremium(t *testing.T) {
	db := newTestDB(t)
	course := premiumCourse()

	outcome, err := EnrollFree(db, 1, course)
	require.NoError(t, err)
	require.Equal(t, EnrollNeedsCart, outcome)

	require.NoError(t, db.Create(&enrollModel.EnrollmentModel{
		EnrollmentUserID: 1, EnrollmentCourseID: 20, EnrollmentUnlocked: false,
	}).Error)
	outcome, err = EnrollFree(db, 1, course)
	require.NoError(t, err)
	require.Equal(t, EnrollAwaitingPayment, outcome)
}

func TestUpsertUnlocked(t *testing.T) {
	db := newTestDB(t)

	// Belum ada enrollment: dibuat langsung terbuka.
	require.NoError(t, UpsertUnlocked(db, 1, 20))
	var e enrollModel.EnrollmentModel
	require.NoError(t, db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", 1, 20).First(&e).Error)
	require.True(t, e.EnrollmentUnlocked)

	// Enrollment terkunci: flip jadi terbuka.
	require.NoError(t, db.Model(&e).Update("enrollment_unlocked", false).Error)
	require.NoError(t, UpsertUnlocked(db, 1, 20))
	require.NoError(t, db.First(&e, e.EnrollmentID).Error)
	require.True(t, e.EnrollmentUnlocked)

	// Sudah terbuka: no-op, tidak menambah baris.
	require.NoError(t, UpsertUnlocked(db, 1, 20))
	var count int64
	require.NoError(t, db.Model(&enrollModel.EnrollmentModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUnenrollStudentRemovesAllTraces(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&enrollModel.EnrollmentModel{
		EnrollmentUserID: 1, EnrollmentCourseID: 10, EnrollmentUnlocked: true,
	}).Error)
	lesson := lessonModel.LessonModel{LessonCourseID: 10, LessonTitle: "Materi"}
	require.NoError(t, db.Create(&lesson).Error)
	require.NoError(t, db.Create(&lessonModel.LessonProgressModel{
		LessonProgressUserID: 1, LessonProgressLessonID: lesson.LessonID,
	}).Error)
	require.NoError(t, db.Create(&quizModel.AttemptModel{
		AttemptUserID: 1, AttemptCourseID: 10, AttemptScore: 80, AttemptPassed: true,
	}).Error)
	require.NoError(t, db.Create(&exerciseModel.ExerciseSubmissionModel{
		ExerciseSubmissionUserID: 1, ExerciseSubmissionCourseID: 10,
		ExerciseSubmissionURL: "https://github.com/student/tugas",
	}).Error)
	require.NoError(t, db.Create(&cartModel.CartItemModel{
		CartItemUserID: 1, CartItemCourseID: 10,
	}).Error)

	require.NoError(t, UnenrollStudent(db, 10, 1))

	for _, m := range []any{
		&enrollModel.EnrollmentModel{},
		&lessonModel.LessonProgressModel{},
		&quizModel.AttemptModel{},
		&exerciseModel.ExerciseSubmissionModel{},
		&cartModel.CartItemModel{},
	} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		require.Zero(t, count)
	}
}

func TestUnenrollStudentNotEnrolled(t *testing.T) {
	db := newTestDB(t)
	require.ErrorIs(t, UnenrollStudent(db, 10, 1), ErrNotEnrolled)
}
