package service

import (
	"errors"

	"gorm.io/gorm"

	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
)

// Eligibility membawa hasil pemeriksaan syarat unduh sertifikat.
// Reason berisi pesan untuk syarat PERTAMA yang gagal; pemeriksaan
// berhenti di situ (urutan: enrollment → latihan → kuis → materi).
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
	// Notice diisi bila course tidak punya latihan sehingga syarat
	// latihan dianggap terpenuhi.
	Notice string `json:"notice,omitempty"`
}

const (
	reasonNotEnrolled    = "Daftar course terlebih dahulu."
	reasonExerciseScore  = "Anda harus menyelesaikan latihan dan mendapatkan skor sebelum mengunduh sertifikat."
	reasonQuizNotPerfect = "Dapatkan skor 100 pada kuis terlebih dahulu sebelum mengunduh sertifikat."
	reasonLessonsNotDone = "Anda harus menyelesaikan semua materi pelajaran sebelum mengunduh sertifikat."
	noticeNoExercise     = "Tidak ada latihan yang ditentukan untuk kursus ini, sehingga penyelesaian latihan tidak diperlukan untuk sertifikat."
)

// CheckEligibility memeriksa syarat sertifikat secara berurutan dan
// berhenti pada kegagalan pertama. Pemeriksaan role student dilakukan
// di controller.
func CheckEligibility(db *gorm.DB, userID, courseID uint) (Eligibility, error) {
	var out Eligibility

	var enrollment enrollModel.EnrollmentModel
	err := db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		out.Reason = reasonNotEnrolled
		return out, nil
	}
	if err != nil {
		return out, err
	}

	var exercise exerciseModel.ExerciseModel
	err = db.Where("exercise_course_id = ?", courseID).First(&exercise).Error
	switch {
	case err == nil:
		var sub exerciseModel.ExerciseSubmissionModel
		subErr := db.Where("exercise_submission_user_id = ? AND exercise_submission_course_id = ?", userID, courseID).
			First(&sub).Error
		if errors.Is(subErr, gorm.ErrRecordNotFound) ||
			(subErr == nil && (sub.ExerciseSubmissionScore == nil || *sub.ExerciseSubmissionScore <= 0)) {
			out.Reason = reasonExerciseScore
			return out, nil
		}
		if subErr != nil && !errors.Is(subErr, gorm.ErrRecordNotFound) {
			return out, subErr
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		out.Notice = noticeNoExercise
	default:
		return out, err
	}

	var attempt quizModel.AttemptModel
	err = db.Where("attempt_user_id = ? AND attempt_course_id = ?", userID, courseID).
		Order("attempt_id DESC").
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && attempt.AttemptScore < 100) {
		out.Reason = reasonQuizNotPerfect
		return out, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return out, err
	}

	var lessonIDs []uint
	if err := db.Model(&lessonModel.LessonModel{}).
		Where("lesson_course_id = ?", courseID).
		Pluck("lesson_id", &lessonIDs).Error; err != nil {
		return out, err
	}
	if len(lessonIDs) > 0 {
		var done int64
		if err := db.Model(&lessonModel.LessonProgressModel{}).
			Where("lesson_progress_user_id = ? AND lesson_progress_lesson_id IN ?", userID, lessonIDs).
			Count(&done).Error; err != nil {
			return out, err
		}
		if int(done) < len(lessonIDs) {
			out.Reason = reasonLessonsNotDone
			return out, nil
		}
	}

	out.Eligible = true
	return out, nil
}
