package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cartService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/service"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type CartController struct {
	DB *gorm.DB
}

// =========================================================
// ADD - POST /api/cart/:course_id (student)
// =========================================================
func (h *CartController) Add(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	courseID, err := c.ParamsInt("course_id")
	if err != nil || courseID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	outcome, err := cartService.AddToCart(h.DB, userID, uint(courseID))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menambahkan ke keranjang")
	}

	switch outcome {
	case cartService.AddOK:
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Course ditambahkan ke keranjang", nil)
	case cartService.AddCourseNotFound:
		return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
	case cartService.AddNotPremium:
		return helper.Error(c, fiber.StatusBadRequest, "Course ini gratis! Anda bisa langsung mendaftar.")
	case cartService.AddAlreadyUnlocked:
		return helper.Error(c, fiber.StatusConflict, "Anda sudah punya akses penuh ke course ini")
	case cartService.AddAwaitingPayment:
		return helper.Error(c, fiber.StatusConflict, "Pendaftaran course ini sedang menunggu pembayaran")
	default: // AddAlreadyInCart
		return helper.Error(c, fiber.StatusConflict, "Course sudah ada di keranjang")
	}
}

// =========================================================
// REMOVE - DELETE /api/cart/:course_id (student)
// =========================================================
func (h *CartController) Remove(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	courseID, err := c.ParamsInt("course_id")
	if err != nil || courseID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	removed, err := cartService.RemoveFromCart(h.DB, userID, uint(courseID))
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus dari keranjang")
	}
	if !removed {
		return helper.Error(c, fiber.StatusNotFound, "Course tidak ada di keranjang")
	}
	return helper.Success(c, "Course dihapus dari keranjang", nil)
}

// =========================================================
// VIEW - GET /api/cart (student)
// =========================================================
func (h *CartController) View(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	view, err := cartService.ViewCart(h.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil keranjang")
	}
	return helper.Success(c, "Keranjang berhasil diambil", view)
}

// =========================================================
// CHECKOUT (simulasi) - POST /api/cart/checkout (student)
// Membuka semua item keranjang tanpa gateway, lalu mengosongkannya.
// =========================================================
func (h *CartController) Checkout(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	enrolled, err := cartService.CheckoutSimulated(h.DB, userID)
	if err != nil {
		if errors.Is(err, cartService.ErrCartEmpty) {
			return helper.Error(c, fiber.StatusBadRequest, "Keranjang kosong")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses checkout")
	}
	return helper.Success(c, "Checkout berhasil", fiber.Map{
		"enrolled_course_ids": enrolled,
		"enrolled_count":      len(enrolled),
	})
}
