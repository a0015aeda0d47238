package service

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/faaiqa01/course-online-nm-rbd/internals/configs"
)

// FallbackReply dikirim saat provider AI tidak bisa dihubungi.
const FallbackReply = "Maaf, asisten AI sedang tidak dapat merespons. Coba lagi nanti"

const defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"

var httpClient = &http.Client{Timeout: 20 * time.Second}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CallOpenRouter mengirim percakapan ke OpenRouter dan mengembalikan teks
// jawabannya. String kosong berarti gagal; pemanggil memakai FallbackReply.
func CallOpenRouter(messages []ChatMessage) string {
	if strings.ToLower(configs.AIProvider) != "openrouter" {
		log.Println("[WARN] AI_PROVIDER bukan openrouter; chatbot dinonaktifkan.")
		return ""
	}
	if configs.AIAPIKey == "" {
		log.Println("[WARN] OpenRouter API key belum diatur.")
		return ""
	}

	model := configs.AIModel
	if model == "" {
		model = "openrouter/auto"
	}
	baseURL := configs.AIBaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	body, err := sonic.Marshal(chatRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: 600,
	})
	if err != nil {
		log.Printf("[ERROR] Gagal encode payload AI: %v", err)
		return ""
	}

	req, err := http.NewRequest(http.MethodPost, baseURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("[ERROR] Gagal membuat request AI: %v", err)
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+configs.AIAPIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", "LMS AI Assistant")

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Printf("[ERROR] Gagal memanggil OpenRouter: %v", err)
		return ""
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[ERROR] Gagal membaca respons OpenRouter: %v", err)
		return ""
	}
	if resp.StatusCode >= 400 {
		log.Printf("[ERROR] OpenRouter error %d: %s", resp.StatusCode, string(raw))
		return ""
	}

	var parsed chatResponse
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		log.Printf("[ERROR] Respons OpenRouter bukan JSON valid: %v", err)
		return ""
	}
	if len(parsed.Choices) == 0 {
		log.Println("[ERROR] OpenRouter tidak mengembalikan pilihan respons")
		return ""
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content)
}
