package controller

import (
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/dto"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/service"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

type PaymentController struct {
	DB *gorm.DB
}

func createdResponse(order *service.CreatedOrder) dto.CreateTransactionResponse {
	return dto.CreateTransactionResponse{
		SnapToken:  order.SnapToken,
		OrderID:    order.OrderID,
		ExpiryTime: order.ExpiryAt.UTC().Format(time.RFC3339),
	}
}

// =========================================================
// CREATE - POST /api/payments/create-transaction/:course_id (student)
// =========================================================
func (h *PaymentController) CreateTransaction(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	courseID, err := c.ParamsInt("course_id")
	if err != nil || courseID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	order, err := service.CreateSingleOrder(h.DB, userID, helper.GetUserName(c), c.Query("email"), uint(courseID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseFree):
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAlreadyEnrolled):
			return helper.Error(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		log.Println("[ERROR] Gagal membuat transaksi:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat transaksi pembayaran")
	}
	return helper.Success(c, "Transaksi berhasil dibuat", createdResponse(order))
}

// =========================================================
// CREATE CART - POST /api/payments/cart/create-transaction (student)
// Satu transaksi untuk semua item keranjang.
// =========================================================
func (h *PaymentController) CreateCartTransaction(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	order, err := service.CreateCartOrder(h.DB, userID, helper.GetUserName(c), c.Query("email"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			return helper.Error(c, fiber.StatusBadRequest, "Keranjang kosong.")
		case errors.Is(err, service.ErrNoPremiumInCart):
			return helper.Error(c, fiber.StatusBadRequest, "Tidak ada course premium di keranjang")
		}
		log.Println("[ERROR] Gagal membuat transaksi keranjang:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat transaksi pembayaran")
	}
	return helper.Success(c, "Transaksi keranjang berhasil dibuat", createdResponse(order))
}

// =========================================================
// NOTIFICATION - POST /api/payments/notification (publik, tanpa auth)
// Signature wajib valid sebelum status dipercaya.
// =========================================================
func (h *PaymentController) Notification(c *fiber.Ctx) error {
	raw := c.Body()

	var notif dto.MidtransNotification
	if err := sonic.Unmarshal(raw, &notif); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload notifikasi tidak valid")
	}
	if notif.OrderID == "" || notif.TransactionStatus == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Payload notifikasi tidak lengkap")
	}

	if !service.VerifySignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey) {
		log.Printf("[WARN] Signature notifikasi tidak cocok untuk order %s", notif.OrderID)
		return helper.Error(c, fiber.StatusForbidden, "Signature tidak valid")
	}

	payment, err := service.Reconcile(h.DB, service.GatewayStatus{
		OrderID:           notif.OrderID,
		TransactionStatus: notif.TransactionStatus,
		FraudStatus:       notif.FraudStatus,
		PaymentType:       notif.PaymentType,
		TransactionTime:   notif.TransactionTime,
		SettlementTime:    notif.SettlementTime,
		Raw:               raw,
	})
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			// Order yang tidak dikenal di-ack supaya gateway berhenti mengirim ulang.
			log.Printf("[WARN] Notifikasi untuk order tak dikenal %s diabaikan", notif.OrderID)
			return helper.Success(c, "Notifikasi diabaikan", nil)
		}
		log.Println("[ERROR] Gagal memproses notifikasi:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memproses notifikasi")
	}

	return helper.Success(c, "Notifikasi diproses", fiber.Map{
		"order_id": payment.PaymentOrderID,
		"status":   payment.PaymentTransactionStatus,
	})
}

// =========================================================
// CHECK STATUS - POST /api/payments/check-status/:order_id (student)
// Poll manual ke Midtrans; hasilnya lewat jalur rekonsiliasi yang sama
// dengan webhook.
// =========================================================
func (h *PaymentController) CheckStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	orderID := c.Params("order_id")

	if _, err := service.FindByOrderID(h.DB, userID, orderID); err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil payment")
	}

	statusResp, err := service.CheckTransaction(orderID)
	if err != nil || statusResp == nil {
		log.Printf("[ERROR] Gagal cek status %s: %v", orderID, err)
		return helper.Error(c, fiber.StatusNotFound,
			"Transaksi tidak ditemukan di Midtrans. Kemungkinan popup dibatalkan sebelum pembayaran diproses.")
	}

	raw, _ := sonic.Marshal(statusResp)
	payment, err := service.Reconcile(h.DB, service.GatewayStatus{
		OrderID:           orderID,
		TransactionStatus: statusResp.TransactionStatus,
		FraudStatus:       statusResp.FraudStatus,
		PaymentType:       statusResp.PaymentType,
		TransactionTime:   statusResp.TransactionTime,
		SettlementTime:    statusResp.SettlementTime,
		Raw:               raw,
	})
	if err != nil {
		log.Println("[ERROR] Gagal rekonsiliasi status:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal memperbarui status")
	}

	return helper.Success(c, "Status berhasil diperbarui", fiber.Map{
		"order_id": payment.PaymentOrderID,
		"status":   payment.PaymentTransactionStatus,
	})
}

// =========================================================
// RETRY - POST /api/payments/retry/:order_id (student)
// =========================================================
func (h *PaymentController) Retry(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	orderID := c.Params("order_id")

	order, err := service.RetryOrder(h.DB, userID, helper.GetUserName(c), c.Query("email"), orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		case errors.Is(err, service.ErrNotRetryable):
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		log.Println("[ERROR] Gagal retry payment:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal membuat ulang transaksi")
	}
	return helper.Success(c, "Transaksi retry berhasil dibuat", createdResponse(order))
}

// =========================================================
// DELETE - DELETE /api/payments/:order_id (student)
// =========================================================
func (h *PaymentController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	orderID := c.Params("order_id")

	if err := service.DeleteOrder(h.DB, userID, orderID); err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		case errors.Is(err, service.ErrNotDeletable):
			return helper.Error(c, fiber.StatusBadRequest, "Hanya pembayaran pending/gagal yang bisa dihapus")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menghapus payment")
	}
	return helper.Success(c, "Payment record berhasil dihapus", nil)
}

// =========================================================
// MARK FAILED - POST /api/payments/mark-failed/:order_id (student)
// Dipanggil saat user menutup popup pembayaran.
// =========================================================
func (h *PaymentController) MarkFailed(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	orderID := c.Params("order_id")

	if err := service.MarkFailed(h.DB, userID, orderID); err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return helper.Error(c, fiber.StatusNotFound, "Payment tidak ditemukan")
		case errors.Is(err, service.ErrNotMarkableFailed):
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menandai payment gagal")
	}
	return helper.Success(c, "Payment ditandai batal", nil)
}

// =========================================================
// HISTORY - GET /api/payments/history (student)
// =========================================================
func (h *PaymentController) History(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	payments, err := service.HistoryForUser(h.DB, userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat pembayaran")
	}
	return helper.Success(c, "Riwayat pembayaran berhasil diambil", payments)
}

// =========================================================
// INVOICE - GET /api/payments/invoice/:order_id (student)
// =========================================================
func (h *PaymentController) Invoice(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	orderID := c.Params("order_id")

	payment, err := service.FindByOrderID(h.DB, userID, orderID)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal mengambil pembayaran")
	}
	return helper.Success(c, "Invoice berhasil diambil", payment)
}
