package service

import (
	"errors"

	"gorm.io/gorm"

	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
)

/* =========================================================
   Unlock engine
========================================================= */

type Access struct {
	Enrolled bool `json:"enrolled"`
	Unlocked bool `json:"unlocked"`
}

// CanAccess memutuskan status akses user terhadap sebuah course.
// userID 0 = belum login. Untuk course gratis, nilai unlocked yang tersimpan
// diabaikan: enrolled ⇒ unlocked.
func CanAccess(db *gorm.DB, userID uint, course *courseModel.CourseModel) (Access, error) {
	if userID == 0 {
		return Access{}, nil
	}
	var e enrollModel.EnrollmentModel
	err := db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, course.CourseID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Access{}, nil
	}
	if err != nil {
		return Access{}, err
	}
	return Access{
		Enrolled: true,
		Unlocked: !course.CourseIsPremium || e.EnrollmentUnlocked,
	}, nil
}

/* =========================================================
   Enroll
========================================================= */

type EnrollOutcome int

const (
	EnrollCreated EnrollOutcome = iota
	EnrollAlreadyEnrolled
	EnrollAwaitingPayment // premium, enrollment ada tapi masih terkunci
	EnrollNeedsCart       // premium tanpa enrollment: arahkan ke keranjang
)

// EnrollFree menangani enroll langsung. Course premium tidak pernah dibuat
// enrollment-nya lewat jalur ini; pembukaannya lewat checkout/pembayaran.
func EnrollFree(db *gorm.DB, userID uint, course *courseModel.CourseModel) (EnrollOutcome, error) {
	var existing enrollModel.EnrollmentModel
	err := db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, course.CourseID).
		First(&existing).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	if course.CourseIsPremium {
		if !found {
			return EnrollNeedsCart, nil
		}
		if existing.EnrollmentUnlocked {
			return EnrollAlreadyEnrolled, nil
		}
		return EnrollAwaitingPayment, nil
	}

	if found {
		return EnrollAlreadyEnrolled, nil
	}

	e := enrollModel.EnrollmentModel{
		EnrollmentUserID:   userID,
		EnrollmentCourseID: course.CourseID,
		EnrollmentUnlocked: true,
	}
	if err := db.Create(&e).Error; err != nil {
		// race insert ganda → perlakukan sebagai sudah terdaftar
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return EnrollAlreadyEnrolled, nil
		}
		return 0, err
	}
	return EnrollCreated, nil
}

// UpsertUnlocked membuat enrollment terbuka, atau membuka yang masih
// terkunci. Enrollment yang sudah terbuka dibiarkan (aman diulang).
func UpsertUnlocked(db *gorm.DB, userID, courseID uint) error {
	var existing enrollModel.EnrollmentModel
	err := db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		e := enrollModel.EnrollmentModel{
			EnrollmentUserID:   userID,
			EnrollmentCourseID: courseID,
			EnrollmentUnlocked: true,
		}
		if err := db.Create(&e).Error; err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return nil
	}
	if err != nil {
		return err
	}
	if !existing.EnrollmentUnlocked {
		existing.EnrollmentUnlocked = true
		return db.Save(&existing).Error
	}
	return nil
}

/* =========================================================
   Unenroll (instructor) — bersihkan semua jejak siswa di course
========================================================= */

var ErrNotEnrolled = errors.New("siswa tidak terdaftar di course ini")

func UnenrollStudent(db *gorm.DB, courseID, studentID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var enrollment enrollModel.EnrollmentModel
		if err := tx.Where("enrollment_user_id = ? AND enrollment_course_id = ?", studentID, courseID).
			First(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotEnrolled
			}
			return err
		}

		if err := tx.Where("attempt_user_id = ? AND attempt_course_id = ?", studentID, courseID).
			Delete(&quizModel.AttemptModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("exercise_submission_user_id = ? AND exercise_submission_course_id = ?", studentID, courseID).
			Delete(&exerciseModel.ExerciseSubmissionModel{}).Error; err != nil {
			return err
		}

		var lessonIDs []uint
		if err := tx.Model(&lessonModel.LessonModel{}).
			Where("lesson_course_id = ?", courseID).
			Pluck("lesson_id", &lessonIDs).Error; err != nil {
			return err
		}
		if len(lessonIDs) > 0 {
			if err := tx.Where("lesson_progress_user_id = ? AND lesson_progress_lesson_id IN ?", studentID, lessonIDs).
				Delete(&lessonModel.LessonProgressModel{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("cart_item_user_id = ? AND cart_item_course_id = ?", studentID, courseID).
			Delete(&cartModel.CartItemModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&enrollment).Error
	})
}
