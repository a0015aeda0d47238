package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	chatModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/chat/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
	"github.com/faaiqa01/course-online-nm-rbd/internals/constants"
)

const systemPrompt = "Kamu adalah Asisten AI TechNova. Bantu pengguna dalam Bahasa Indonesia dengan gaya natural dan ringkas. " +
	"PENTING: Sesuaikan panjang jawaban dengan kompleksitas pertanyaan - pertanyaan sederhana dijawab singkat, pertanyaan detail dijawab lengkap. " +
	"Gunakan informasi katalog kursus yang diberikan untuk menjawab dengan data konkret (nama kursus, harga, instruktur). " +
	"Prioritaskan jawaban praktis dan langsung ke poin, hindari penjelasan bertele-tele. " +
	"Jika user meminta kamu melakukan aksi (reset password, enroll, checkout, dll), SELALU jelaskan bahwa kamu tidak bisa melakukan aksi tersebut, " +
	"hanya bisa memberikan panduan langkah-langkahnya. " +
	"Jika data tidak tersedia, arahkan pengguna ke halaman Kursus atau hubungi admin dengan sopan."

// buildCatalogContext merangkum katalog kursus untuk siswa.
func buildCatalogContext(db *gorm.DB) string {
	var courses []courseModel.CourseModel
	if err := db.Preload("CourseInstructor").
		Order("course_id ASC").Limit(50).
		Find(&courses).Error; err != nil {
		log.Printf("[ERROR] Gagal memuat katalog untuk konteks AI: %v", err)
		return ""
	}
	if len(courses) == 0 {
		return ""
	}
	var b strings.Builder
	for _, c := range courses {
		price := "gratis"
		if c.CourseIsPremium {
			price = fmt.Sprintf("Rp%d", c.CoursePrice)
		}
		instructor := "-"
		if c.CourseInstructor != nil {
			instructor = c.CourseInstructor.UserName
		}
		fmt.Fprintf(&b, "%s (%s, instruktur %s); ", c.CourseTitle, price, instructor)
	}
	return b.String()
}

// buildInstructorContext merangkum kursus milik seorang instruktur.
func buildInstructorContext(db *gorm.DB, instructorID uint) string {
	var courses []courseModel.CourseModel
	if err := db.Where("course_instructor_id = ?", instructorID).
		Order("course_id ASC").
		Find(&courses).Error; err != nil {
		log.Printf("[ERROR] Gagal memuat kursus instruktur untuk konteks AI: %v", err)
		return ""
	}
	if len(courses) == 0 {
		return ""
	}
	titles := make([]string, 0, len(courses))
	for _, c := range courses {
		titles = append(titles, c.CourseTitle)
	}
	return strings.Join(titles, "; ")
}

// BuildChatMessages menyiapkan payload percakapan: system prompt + konteks
// user + 10 chat terakhir (maksimal 1 jam ke belakang) + pertanyaan baru.
func BuildChatMessages(db *gorm.DB, user *userModel.UserModel, userMessage string) []ChatMessage {
	system := systemPrompt
	if user != nil {
		roleLabel := "siswa"
		if user.UserRole == constants.RoleInstructor {
			roleLabel = "instruktur"
		}
		system += fmt.Sprintf(" Informasi pengguna: Pengguna bernama %s berperan sebagai %s.", user.UserName, roleLabel)
		if user.UserExpertise != nil && *user.UserExpertise != "" {
			system += fmt.Sprintf(" Keahlian: %s.", *user.UserExpertise)
		}
		switch user.UserRole {
		case constants.RoleStudent:
			if catalog := buildCatalogContext(db); catalog != "" {
				system += " Informasi katalog: " + catalog
			}
		case constants.RoleInstructor:
			if own := buildInstructorContext(db, user.UserID); own != "" {
				system += " Kursus Anda: " + own
			}
		}
	}

	messages := []ChatMessage{{Role: "system", Content: system}}

	if user != nil {
		oneHourAgo := time.Now().Add(-1 * time.Hour)
		var history []chatModel.ChatHistoryModel
		err := db.Where("chat_history_user_id = ? AND created_at >= ?", user.UserID, oneHourAgo).
			Order("created_at DESC").
			Limit(10).
			Find(&history).Error
		if err != nil {
			log.Printf("[ERROR] Gagal load chat history user %d: %v", user.UserID, err)
		}
		// dibalik supaya kronologis (paling lama dulu)
		for i := len(history) - 1; i >= 0; i-- {
			messages = append(messages, ChatMessage{
				Role:    history[i].ChatHistoryRole,
				Content: history[i].ChatHistoryMessage,
			})
		}
	}

	messages = append(messages, ChatMessage{Role: "user", Content: strings.TrimSpace(userMessage)})
	return messages
}
