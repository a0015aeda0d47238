package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	JWTSecret            string
	MidtransServerKey    string
	MidtransClientKey    string
	MidtransIsProduction bool

	// Masa berlaku pembayaran (menit) sebelum dianggap kedaluwarsa di invoice.
	PaymentExpireMinutes int

	// Kalau true, instructor juga dibatasi satu kali submit kuis (default: bebas).
	QuizSingleAttemptForInstructors bool

	CertificateTemplatePath string
	CertificatePlatformName string

	AIProvider string
	AIAPIKey   string
	AIModel    string
	AIBaseURL  string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransClientKey = GetEnv("MIDTRANS_CLIENT_KEY")
	MidtransIsProduction = getEnvBool("MIDTRANS_IS_PRODUCTION", false)
	PaymentExpireMinutes = getEnvInt("MIDTRANS_PAYMENT_EXPIRE_MINUTES", 1440)
	QuizSingleAttemptForInstructors = getEnvBool("QUIZ_SINGLE_ATTEMPT_FOR_INSTRUCTORS", false)
	CertificateTemplatePath = GetEnv("CERTIFICATE_TEMPLATE_PATH", "file_pendukung/sertifikat/template_sertifikat_lms.png")
	CertificatePlatformName = GetEnv("CERTIFICATE_PLATFORM_NAME", "TechNova Academy")
	AIProvider = GetEnv("AI_PROVIDER")
	AIAPIKey = GetEnv("AI_API_KEY")
	AIModel = GetEnv("AI_MODEL", "openrouter/auto")
	AIBaseURL = GetEnv("AI_BASE_URL", "https://openrouter.ai/api/v1/chat/completions")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if MidtransServerKey == "" {
		log.Println("❌ MIDTRANS_SERVER_KEY belum diset, fitur pembayaran tidak akan jalan!")
	} else {
		log.Println("✅ MIDTRANS_SERVER_KEY berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvBool(key string, def bool) bool {
	v, exists := os.LookupEnv(key)
	if !exists {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v, exists := os.LookupEnv(key)
	if !exists {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
