package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	exerciseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/exercises/model"
	lessonModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/lessons/model"
	quizModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/quizzes/model"
	chatModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/chat/model"
	paymentModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/model"
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=course_online&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// MigrateAll menjalankan AutoMigrate untuk semua tabel LMS.
func MigrateAll() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&lessonModel.LessonModel{},
		&lessonModel.LessonProgressModel{},
		&enrollModel.EnrollmentModel{},
		&cartModel.CartItemModel{},
		&quizModel.QuestionModel{},
		&quizModel.ChoiceModel{},
		&quizModel.AttemptModel{},
		&exerciseModel.ExerciseModel{},
		&exerciseModel.ExerciseSubmissionModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.PaymentLineItemModel{},
		&chatModel.ChatHistoryModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}

func WarmUpQueries() {
	// jalankan ringan supaya koneksi/pool keisi & siap
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
