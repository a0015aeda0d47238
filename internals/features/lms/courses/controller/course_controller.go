package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/dto"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	courseService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/service"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type CourseController struct {
	DB *gorm.DB
}

var validate = validator.New()

// findOwnedCourse memuat course dan memastikan pemanggil adalah instruktur
// pemiliknya.
func (h *CourseController) findOwnedCourse(c *fiber.Ctx, courseID uint) (*courseModel.CourseModel, error) {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return nil, helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	var course courseModel.CourseModel
	if err := h.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return nil, helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil course")
	}
	if course.CourseInstructorID != userID {
		return nil, helper.Error(c, fiber.StatusForbidden, "Anda bukan pemilik course ini")
	}
	return &course, nil
}

// =========================================================
// CREATE - POST /api/courses (instructor)
// =========================================================
func (h *CourseController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req dto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.IsPremium && req.Price <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Course premium harus punya harga lebih dari 0")
	}

	course := req.ToModel(userID)
	if err := h.DB.Create(course).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat course")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Course berhasil dibuat", dto.ToCourseResponse(course))
}

// =========================================================
// UPDATE - PUT /api/courses/:id (instructor pemilik)
// =========================================================
func (h *CourseController) Update(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}
	course, ferr := h.findOwnedCourse(c, uint(courseID))
	if course == nil {
		return ferr
	}

	var req dto.CourseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.IsPremium && req.Price <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Course premium harus punya harga lebih dari 0")
	}

	course.CourseTitle = req.Title
	course.CourseDescription = req.Description
	course.CourseIsPremium = req.IsPremium
	course.CoursePrice = req.Price
	course.CourseMaterialType = req.MaterialType
	course.CourseThumbnailPath = req.Thumbnail
	course.NormalizePrice()

	if err := h.DB.Save(course).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui course")
	}
	return helper.Success(c, "Course berhasil diperbarui", dto.ToCourseResponse(course))
}

// =========================================================
// DELETE - DELETE /api/courses/:id (instructor pemilik, cascade)
// =========================================================
func (h *CourseController) Delete(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}
	course, ferr := h.findOwnedCourse(c, uint(courseID))
	if course == nil {
		return ferr
	}

	if err := courseService.DeleteCascade(h.DB, course.CourseID); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus course")
	}
	return helper.Success(c, "Course beserta seluruh isinya berhasil dihapus", nil)
}

// =========================================================
// LIST - GET /api/courses (publik, auth opsional)
// Query: q, material_type, is_premium, page, per_page
// Instructor hanya melihat course miliknya sendiri.
// =========================================================
func (h *CourseController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 12, 50)

	q := h.DB.Model(&courseModel.CourseModel{}).Preload("CourseInstructor")

	if helper.IsInstructor(c) {
		if userID, err := helper.GetUserID(c); err == nil {
			q = q.Where("course_instructor_id = ?", userID)
		}
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(course_title) LIKE ? OR LOWER(course_description) LIKE ?", like, like)
	}
	if mt := strings.TrimSpace(c.Query("material_type")); mt != "" {
		q = q.Where("course_material_type = ?", mt)
	}
	if premium := c.Query("is_premium"); premium != "" {
		q = q.Where("course_is_premium = ?", premium == "true" || premium == "1")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghitung course")
	}

	var courses []courseModel.CourseModel
	if err := q.Order("course_id DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&courses).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil daftar course")
	}

	return helper.Success(c, "Daftar course berhasil diambil", fiber.Map{
		"courses":    dto.ToCourseResponses(courses),
		"pagination": helper.BuildPagination(total, paging, len(courses)),
	})
}

// =========================================================
// HOME - GET /api/home (publik)
// =========================================================
func (h *CourseController) Home(c *fiber.Ctx) error {
	popular, err := courseService.Popular(h.DB, 4)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil course terpopuler")
	}
	newest, err := courseService.Newest(h.DB, 4)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil course terbaru")
	}
	return helper.Success(c, "Beranda berhasil diambil", dto.HomeResponse{
		Popular: dto.ToCourseResponses(popular),
		Newest:  dto.ToCourseResponses(newest),
	})
}
