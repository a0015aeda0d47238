package service

import (
	"errors"

	"gorm.io/gorm"

	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
)

var (
	ErrNoExercise       = errors.New("course ini belum memiliki latihan")
	ErrAlreadySubmitted = errors.New("latihan sudah pernah dikirim dan tidak bisa diubah")
	ErrNoSubmission     = errors.New("siswa belum mengirim latihan")
	ErrScoreOutOfRange  = errors.New("skor harus antara 0 sampai 100")
)

type ExerciseInput struct {
	Name        string `json:"exercise_name" validate:"required,max=200"`
	Description string `json:"exercise_description"`
	URL         string `json:"exercise_url" validate:"omitempty,url,max=500"`
}

// UpsertExercise membuat atau memperbarui latihan course (maksimal satu per
// course, jadi operasi manage selalu upsert).
func UpsertExercise(db *gorm.DB, courseID uint, in ExerciseInput) (*exerciseModel.ExerciseModel, error) {
	var exercise exerciseModel.ExerciseModel
	err := db.Where("exercise_course_id = ?", courseID).First(&exercise).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		exercise = exerciseModel.ExerciseModel{
			ExerciseCourseID:    courseID,
			ExerciseName:        in.Name,
			ExerciseDescription: in.Description,
			ExerciseURL:         in.URL,
		}
		if err := db.Create(&exercise).Error; err != nil {
			return nil, err
		}
		return &exercise, nil
	}
	if err != nil {
		return nil, err
	}
	exercise.ExerciseName = in.Name
	exercise.ExerciseDescription = in.Description
	exercise.ExerciseURL = in.URL
	if err := db.Save(&exercise).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

// SubmitExercise menyimpan URL pengerjaan siswa. Satu kali per course;
// kiriman kedua ditolak, bukan menimpa.
func SubmitExercise(db *gorm.DB, userID, courseID uint, url string) (*exerciseModel.ExerciseSubmissionModel, error) {
	var exercise exerciseModel.ExerciseModel
	if err := db.Where("exercise_course_id = ?", courseID).First(&exercise).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoExercise
		}
		return nil, err
	}

	var existing exerciseModel.ExerciseSubmissionModel
	err := db.Where("exercise_submission_user_id = ? AND exercise_submission_course_id = ?", userID, courseID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadySubmitted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := exerciseModel.ExerciseSubmissionModel{
		ExerciseSubmissionUserID:   userID,
		ExerciseSubmissionCourseID: courseID,
		ExerciseSubmissionURL:      url,
	}
	if err := db.Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubmitted
		}
		return nil, err
	}
	return &sub, nil
}

// SetScore mengisi/memperbarui skor submission seorang siswa (0..100).
func SetScore(db *gorm.DB, userID, courseID uint, score int) (*exerciseModel.ExerciseSubmissionModel, error) {
	if score < 0 || score > 100 {
		return nil, ErrScoreOutOfRange
	}
	var sub exerciseModel.ExerciseSubmissionModel
	err := db.Where("exercise_submission_user_id = ? AND exercise_submission_course_id = ?", userID, courseID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSubmission
	}
	if err != nil {
		return nil, err
	}
	sub.ExerciseSubmissionScore = &score
	if err := db.Save(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
