package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/configs"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/users/auth/dto"
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

var validate = validator.New()

const tokenTTL = 24 * time.Hour

func issueAccessToken(u *userModel.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   u.UserID,
		"user_name": u.UserName,
		"role":      u.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

func toUserResponse(u *userModel.UserModel) dto.UserResponse {
	return dto.UserResponse{
		UserID:   u.UserID,
		UserName: u.UserName,
		Email:    u.UserEmail,
		Role:     u.UserRole,
	}
}

// =========================================================
// REGISTER - POST /api/auth/register
// =========================================================
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var existing userModel.UserModel
	err := h.DB.Where("user_email = ?", req.Email).First(&existing).Error
	if err == nil {
		return helper.Error(c, fiber.StatusConflict, "Email sudah terdaftar")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa email")
	}

	u := userModel.UserModel{
		UserName:  req.UserName,
		UserEmail: req.Email,
		UserRole:  req.Role,
	}
	if err := u.SetPassword(req.Password); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}
	if err := h.DB.Create(&u).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat akun")
	}

	log.Printf("[INFO] User baru terdaftar: %s (%s)", u.UserEmail, u.UserRole)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registrasi berhasil. Silakan login.", toUserResponse(&u))
}

// =========================================================
// LOGIN - POST /api/auth/login
// =========================================================
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var u userModel.UserModel
	err := h.DB.Where("user_email = ?", req.Email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !u.CheckPassword(req.Password)) {
		return helper.Error(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa kredensial")
	}

	token, err := issueAccessToken(&u)
	if err != nil {
		log.Println("[ERROR] Gagal membuat token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return helper.Success(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		User:        toUserResponse(&u),
	})
}

// =========================================================
// FORGOT PASSWORD - POST /api/auth/forgot-password
// Respons selalu sama, terdaftar atau tidak, supaya email tidak bisa
// dipakai untuk probing akun.
// =========================================================
func (h *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var u userModel.UserModel
	err := h.DB.Where("user_email = ?", req.Email).First(&u).Error
	if err == nil {
		if err := u.SetPassword(req.Password); err == nil {
			if err := h.DB.Save(&u).Error; err != nil {
				log.Println("[ERROR] Gagal reset password:", err)
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[ERROR] Gagal mencari user untuk reset password:", err)
	}

	return helper.Success(c, "Jika email terdaftar, password sudah direset. Silakan login.", nil)
}

// =========================================================
// LOGOUT - POST /api/auth/logout
// =========================================================
func (h *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.Success(c, "Logout berhasil", nil)
}
