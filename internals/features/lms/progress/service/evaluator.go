package service

import (
	"errors"

	"gorm.io/gorm"

	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
)

// Components memotret kemajuan course untuk satu siswa. Komponen hanya
// dihitung bila course memilikinya: materi kalau ada lesson, kuis kalau ada
// soal, latihan kalau ada exercise. Course tanpa komponen = 0%.
type Components struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`

	LessonsCompleted bool `json:"lessons_completed"`
	QuizPerfect      bool `json:"quiz_perfect"`
	ExerciseScored   bool `json:"exercise_scored"`

	LessonsDone  int `json:"lessons_done"`
	LessonsTotal int `json:"lessons_total"`
}

// Evaluate menghitung komponen kemajuan:
//   - seluruh lesson selesai,
//   - attempt kuis TERBARU berskor 100,
//   - submission latihan sudah dinilai (skor non-null).
func Evaluate(db *gorm.DB, userID, courseID uint) (Components, error) {
	var c Components

	var lessonIDs []uint
	if err := db.Model(&lessonModel.LessonModel{}).
		Where("lesson_course_id = ?", courseID).
		Pluck("lesson_id", &lessonIDs).Error; err != nil {
		return c, err
	}
	c.LessonsTotal = len(lessonIDs)
	if len(lessonIDs) > 0 {
		c.Total++
		var done int64
		if err := db.Model(&lessonModel.LessonProgressModel{}).
			Where("lesson_progress_user_id = ? AND lesson_progress_lesson_id IN ?", userID, lessonIDs).
			Count(&done).Error; err != nil {
			return c, err
		}
		c.LessonsDone = int(done)
		if c.LessonsDone == c.LessonsTotal {
			c.LessonsCompleted = true
			c.Completed++
		}
	}

	var questionCount int64
	if err := db.Model(&quizModel.QuestionModel{}).
		Where("question_course_id = ?", courseID).
		Count(&questionCount).Error; err != nil {
		return c, err
	}
	if questionCount > 0 {
		c.Total++
		var latest quizModel.AttemptModel
		err := db.Where("attempt_user_id = ? AND attempt_course_id = ?", userID, courseID).
			Order("attempt_id DESC").
			First(&latest).Error
		if err == nil && latest.AttemptScore == 100 {
			c.QuizPerfect = true
			c.Completed++
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return c, err
		}
	}

	var exerciseCount int64
	if err := db.Model(&exerciseModel.ExerciseModel{}).
		Where("exercise_course_id = ?", courseID).
		Count(&exerciseCount).Error; err != nil {
		return c, err
	}
	if exerciseCount > 0 {
		c.Total++
		var sub exerciseModel.ExerciseSubmissionModel
		err := db.Where("exercise_submission_user_id = ? AND exercise_submission_course_id = ?", userID, courseID).
			First(&sub).Error
		if err == nil && sub.ExerciseSubmissionScore != nil {
			c.ExerciseScored = true
			c.Completed++
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return c, err
		}
	}

	if c.Total > 0 {
		c.Percent = c.Completed * 100 / c.Total
	}
	return c, nil
}

// LessonPercent: persen lesson saja, untuk daftar "kursus saya".
// Course tanpa lesson dihitung 0.
func LessonPercent(db *gorm.DB, userID, courseID uint) (int, error) {
	var lessonIDs []uint
	if err := db.Model(&lessonModel.LessonModel{}).
		Where("lesson_course_id = ?", courseID).
		Pluck("lesson_id", &lessonIDs).Error; err != nil {
		return 0, err
	}
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var done int64
	if err := db.Model(&lessonModel.LessonProgressModel{}).
		Where("lesson_progress_user_id = ? AND lesson_progress_lesson_id IN ?", userID, lessonIDs).
		Count(&done).Error; err != nil {
		return 0, err
	}
	return int(done) * 100 / len(lessonIDs), nil
}
