package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/faaiqa01/course-online-nm-rbd/internals/constants"
	chatModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/chat/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&chatModel.ChatHistoryModel{},
	))
	return db
}

func student() *userModel.UserModel {
	return &userModel.UserModel{UserID: 1, UserName: "Budi", UserRole: constants.RoleStudent}
}

func TestBuildChatMessagesSystemAndQuestion(t *testing.T) {
	db := newTestDB(t)

	messages := BuildChatMessages(db, student(), "  Apa itu Go?  ")
	require.Len(t, messages, 2)
	require.Equal(t, "system", messages[0].Role)
	require.Contains(t, messages[0].Content, "Asisten AI TechNova")
	require.Contains(t, messages[0].Content, "Budi berperan sebagai siswa")
	require.Equal(t, "Apa itu Go?", messages[1].Content)
}

func TestBuildChatMessagesStudentGetsCatalog(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&courseModel.CourseModel{
		CourseID: 10, CourseTitle: "Belajar Go", CourseIsPremium: true, CoursePrice: 150000,
	}).Error)

	messages := BuildChatMessages(db, student(), "Ada kursus apa saja?")
	require.Contains(t, messages[0].Content, "Informasi katalog:")
	require.Contains(t, messages[0].Content, "Belajar Go (Rp150000")
}

func TestBuildChatMessagesInstructorGetsOwnCourses(t *testing.T) {
	db := newTestDB(t)
	instructor := &userModel.UserModel{UserID: 2, UserName: "Sari", UserRole: constants.RoleInstructor}
	require.NoError(t, db.Create(&courseModel.CourseModel{
		CourseID: 10, CourseTitle: "Belajar Go", CourseInstructorID: 2,
	}).Error)
	require.NoError(t, db.Create(&courseModel.CourseModel{
		CourseID: 20, CourseTitle: "Milik Orang Lain", CourseInstructorID: 3,
	}).Error)

	messages := BuildChatMessages(db, instructor, "Kursus saya apa saja?")
	require.Contains(t, messages[0].Content, "berperan sebagai instruktur")
	require.Contains(t, messages[0].Content, "Kursus Anda: Belajar Go")
	require.NotContains(t, messages[0].Content, "Milik Orang Lain")
}

func TestBuildChatMessagesHistoryWindow(t *testing.T) {
	db := newTestDB(t)

	// 12 pesan baru + 1 pesan kadaluarsa (lebih dari sejam).
	now := time.Now()
	for i := 0; i < 12; i++ {
		role := chatModel.ChatRoleUser
		if i%2 == 1 {
			role = chatModel.ChatRoleAssistant
		}
		msg := chatModel.ChatHistoryModel{
			ChatHistoryUserID:  1,
			ChatHistoryRole:    role,
			ChatHistoryMessage: fmt.Sprintf("pesan-%d", i),
		}
		require.NoError(t, db.Create(&msg).Error)
		require.NoError(t, db.Model(&msg).
			Update("created_at", now.Add(time.Duration(i-12)*time.Minute)).Error)
	}
	stale := chatModel.ChatHistoryModel{
		ChatHistoryUserID:  1,
		ChatHistoryRole:    chatModel.ChatRoleUser,
		ChatHistoryMessage: "pesan-kadaluarsa",
	}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Model(&stale).
		Update("created_at", time.Now().Add(-2*time.Hour)).Error)

	messages := BuildChatMessages(db, student(), "Lanjut")
	// system + 10 history + pertanyaan baru
	require.Len(t, messages, 12)

	var contents []string
	for _, m := range messages[1 : len(messages)-1] {
		contents = append(contents, m.Content)
	}
	joined := strings.Join(contents, "|")
	require.NotContains(t, joined, "pesan-kadaluarsa")
	require.Contains(t, contents[len(contents)-1], "pesan-11", "urutan harus kronologis")
}
