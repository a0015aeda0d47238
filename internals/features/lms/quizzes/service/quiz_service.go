package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/configs"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
)

var (
	ErrQuizEmpty         = errors.New("kuis belum memiliki soal")
	ErrAlreadyAttempted  = errors.New("kuis hanya boleh dikerjakan satu kali")
	ErrQuizNotOpen       = errors.New("kuis belum dibuka")
	ErrQuizClosed        = errors.New("periode kuis sudah berakhir")
	ErrNoCorrectChoice   = errors.New("soal harus memiliki tepat satu jawaban benar")
	ErrTooManyCorrect    = errors.New("jawaban benar tidak boleh lebih dari satu")
	ErrChoiceCountRange  = errors.New("jumlah pilihan harus 2 sampai 5")
)

/* =========================================================
   Validasi soal (saat tulis, bukan saat nilai)
========================================================= */

type ChoiceInput struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// ValidateChoices menegakkan tepat-satu-benar di jalur tulis, sehingga
// penilai tidak perlu kasus "soal tanpa kunci".
func ValidateChoices(choices []ChoiceInput) error {
	if len(choices) < 2 || len(choices) > 5 {
		return ErrChoiceCountRange
	}
	correct := 0
	for _, ch := range choices {
		if ch.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		return ErrNoCorrectChoice
	}
	if correct > 1 {
		return ErrTooManyCorrect
	}
	return nil
}

func CreateQuestion(db *gorm.DB, courseID uint, text string, choices []ChoiceInput) (*quizModel.QuestionModel, error) {
	if err := ValidateChoices(choices); err != nil {
		return nil, err
	}
	q := quizModel.QuestionModel{
		QuestionCourseID: courseID,
		QuestionText:     text,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&q).Error; err != nil {
			return err
		}
		for _, ch := range choices {
			c := quizModel.ChoiceModel{
				ChoiceQuestionID: q.QuestionID,
				ChoiceText:       ch.Text,
				ChoiceIsCorrect:  ch.IsCorrect,
			}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestion mengganti teks soal dan seluruh pilihannya sekaligus.
func UpdateQuestion(db *gorm.DB, questionID uint, text string, choices []ChoiceInput) error {
	if err := ValidateChoices(choices); err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var q quizModel.QuestionModel
		if err := tx.First(&q, questionID).Error; err != nil {
			return err
		}
		q.QuestionText = text
		if err := tx.Save(&q).Error; err != nil {
			return err
		}
		if err := tx.Where("choice_question_id = ?", q.QuestionID).
			Delete(&quizModel.ChoiceModel{}).Error; err != nil {
			return err
		}
		for _, ch := range choices {
			c := quizModel.ChoiceModel{
				ChoiceQuestionID: q.QuestionID,
				ChoiceText:       ch.Text,
				ChoiceIsCorrect:  ch.IsCorrect,
			}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func DeleteQuestion(db *gorm.DB, questionID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var q quizModel.QuestionModel
		if err := tx.First(&q, questionID).Error; err != nil {
			return err
		}
		if err := tx.Where("choice_question_id = ?", q.QuestionID).
			Delete(&quizModel.ChoiceModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&q).Error
	})
}

/* =========================================================
   Gerbang pengerjaan
========================================================= */

// CanTake memeriksa jendela waktu kuis dan aturan satu-kali-kerja.
// Instructor bebas dari aturan satu kali kecuali konfigurasi menyalakannya.
func CanTake(db *gorm.DB, userID, courseID uint, isInstructor bool, course *courseModel.CourseModel, now time.Time) error {
	if course.CourseQuizStartDate != nil && now.Before(*course.CourseQuizStartDate) {
		return ErrQuizNotOpen
	}
	if course.CourseQuizEndDate != nil && now.After(*course.CourseQuizEndDate) {
		return ErrQuizClosed
	}
	if isInstructor && !configs.QuizSingleAttemptForInstructors {
		return nil
	}
	var n int64
	if err := db.Model(&quizModel.AttemptModel{}).
		Where("attempt_user_id = ? AND attempt_course_id = ?", userID, courseID).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrAlreadyAttempted
	}
	return nil
}

/* =========================================================
   Penilaian
========================================================= */

// Grade menilai jawaban {question_id: choice_id}. Soal tanpa jawaban atau
// dengan choice milik soal lain dihitung salah. Skor = int(benar/total*100).
func Grade(db *gorm.DB, courseID uint, answers map[uint]uint) (score int, passed bool, err error) {
	var questions []quizModel.QuestionModel
	if err = db.Where("question_course_id = ?", courseID).Find(&questions).Error; err != nil {
		return 0, false, err
	}
	if len(questions) == 0 {
		return 0, false, ErrQuizEmpty
	}

	correct := 0
	for _, q := range questions {
		choiceID, ok := answers[q.QuestionID]
		if !ok {
			continue
		}
		var ch quizModel.ChoiceModel
		findErr := db.Where("choice_id = ? AND choice_question_id = ?", choiceID, q.QuestionID).
			First(&ch).Error
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				continue
			}
			return 0, false, findErr
		}
		if ch.ChoiceIsCorrect {
			correct++
		}
	}

	score = correct * 100 / len(questions)
	return score, score >= quizModel.PassingScore, nil
}

// SubmitQuiz: gerbang + nilai + simpan attempt, satu paket.
func SubmitQuiz(db *gorm.DB, userID, courseID uint, isInstructor bool, course *courseModel.CourseModel, answers map[uint]uint) (*quizModel.AttemptModel, error) {
	if err := CanTake(db, userID, courseID, isInstructor, course, time.Now()); err != nil {
		return nil, err
	}
	score, passed, err := Grade(db, courseID, answers)
	if err != nil {
		return nil, err
	}
	attempt := quizModel.AttemptModel{
		AttemptUserID:   userID,
		AttemptCourseID: courseID,
		AttemptScore:    score,
		AttemptPassed:   passed,
	}
	if err := db.Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// LatestAttempt mengembalikan attempt terbaru user di course, nil jika belum ada.
func LatestAttempt(db *gorm.DB, userID, courseID uint) (*quizModel.AttemptModel, error) {
	var a quizModel.AttemptModel
	err := db.Where("attempt_user_id = ? AND attempt_course_id = ?", userID, courseID).
		Order("attempt_id DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
