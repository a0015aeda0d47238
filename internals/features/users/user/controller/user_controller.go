package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/constants"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/dto"
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

var validate = validator.New()

// GET /api/users/profile
func (h *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var u userModel.UserModel
	if err := h.DB.First(&u, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.Success(c, "Profil berhasil diambil", dto.ToProfileResponse(&u))
}

// PUT /api/users/profile
// Field instructor diabaikan untuk student; role tidak pernah berubah.
func (h *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var u userModel.UserModel
	if err := h.DB.First(&u, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
	}

	// Email harus tetap unik antar user lain
	var taken userModel.UserModel
	err = h.DB.Where("user_email = ? AND user_id <> ?", req.Email, userID).First(&taken).Error
	if err == nil {
		return helper.Error(c, fiber.StatusConflict, "Email sudah dipakai user lain")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa email")
	}

	u.UserName = req.UserName
	u.UserEmail = req.Email

	if u.UserRole == constants.RoleInstructor {
		u.UserExpertise = req.Expertise
		u.UserInstitution = req.Institution
		u.UserTeachingExperience = req.TeachingExperience

		if req.CertificateType != nil {
			certType := *req.CertificateType
			switch certType {
			case "default":
				u.UserCertificateType = "default"
				u.UserCertificateData = nil
			case "link":
				if req.CertificateData == nil || !strings.HasPrefix(*req.CertificateData, "http") {
					return helper.Error(c, fiber.StatusBadRequest, "Link sertifikat tidak valid (gunakan awalan http/https).")
				}
				u.UserCertificateType = certType
				u.UserCertificateData = req.CertificateData
			default: // pdf / image
				if req.CertificateData == nil || *req.CertificateData == "" {
					return helper.Error(c, fiber.StatusBadRequest, "File sertifikat tidak valid (hanya PDF, PNG, JPG, JPEG).")
				}
				u.UserCertificateType = certType
				u.UserCertificateData = req.CertificateData
			}
		}
	}

	if err := h.DB.Save(&u).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helper.Success(c, "Profil berhasil diperbarui", dto.ToProfileResponse(&u))
}

// DELETE /api/users/profile/certificate
// Kembalikan sertifikat verifikasi instructor ke default.
func (h *UserController) DeleteCertificate(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var u userModel.UserModel
	if err := h.DB.First(&u, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	if u.UserRole != constants.RoleInstructor {
		return helper.Error(c, fiber.StatusForbidden, "Hanya instructor yang punya sertifikat verifikasi")
	}

	u.UserCertificateType = "default"
	u.UserCertificateData = nil
	if err := h.DB.Save(&u).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus sertifikat")
	}
	return helper.Success(c, "Sertifikat verifikasi dihapus", dto.ToProfileResponse(&u))
}
