package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/configs"
	certService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/certificates/service"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	userModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/users/user/model"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type CertificateController struct {
	DB *gorm.DB
}

// =========================================================
// DOWNLOAD - GET /api/courses/:course_id/certificate (student)
// Syarat diperiksa berurutan; kegagalan menyebut syarat yang gagal.
// =========================================================
func (h *CertificateController) Download(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("course_id")
	if err != nil || courseID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var course courseModel.CourseModel
	if err := h.DB.Preload("CourseInstructor").First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}

	eligibility, err := certService.CheckEligibility(h.DB, userID, course.CourseID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memeriksa syarat sertifikat")
	}
	if !eligibility.Eligible {
		return helper.Error(c, fiber.StatusForbidden, eligibility.Reason)
	}

	var student userModel.UserModel
	if err := h.DB.First(&student, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil data siswa")
	}

	instructorName := "Instruktur"
	if course.CourseInstructor != nil {
		instructorName = course.CourseInstructor.UserName
	}
	materialType := ""
	if course.CourseMaterialType != nil {
		materialType = *course.CourseMaterialType
	}

	pdf, err := certService.BuildPDF(configs.CertificateTemplatePath, certService.CertificateData{
		StudentName:    student.UserName,
		InstructorName: instructorName,
		MaterialType:   materialType,
		CourseTitle:    course.CourseTitle,
		IssuedDate:     time.Now().Format("02 January 2006"),
		PlatformName:   configs.CertificatePlatformName,
	})
	if err != nil {
		log.Println("[ERROR] Gagal membuat sertifikat:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat sertifikat. Hubungi administrator.")
	}

	filename := fmt.Sprintf("Sertifikat_%s.pdf", helper.SanitizeTitle(course.CourseTitle))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}
