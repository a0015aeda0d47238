package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	enrollService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/service"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/model"
)

// GatewayStatus: potret status sebuah order dari gateway, baik dari
// notifikasi webhook maupun hasil poll manual. Keduanya melewati jalur
// rekonsiliasi yang sama.
type GatewayStatus struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
	PaymentType       string
	TransactionTime   string
	SettlementTime    string
	Raw               []byte
}

func parseGatewayTime(v string) *time.Time {
	if v == "" {
		return nil
	}
	// Midtrans mengirim "2006-01-02 15:04:05" (WIB) atau RFC3339.
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// Reconcile menerapkan status gateway ke record pembayaran.
// capture + fraud accept disamakan dengan settlement. Side effect unlock
// enrollment hanya berjalan pada observasi settlement yang PERTAMA
// (payment_enrolled_at masih kosong); notifikasi ulangan jadi no-op.
func Reconcile(db *gorm.DB, status GatewayStatus) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	err := db.Preload("PaymentLineItems").
		Where("payment_order_id = ?", status.OrderID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	next := model.TransactionStatus(status.TransactionStatus)
	if next == model.StatusCapture && status.FraudStatus == "accept" {
		next = model.StatusSettlement
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"payment_transaction_status": next,
		}
		if status.PaymentType != "" {
			updates["payment_type"] = status.PaymentType
		}
		if t := parseGatewayTime(status.TransactionTime); t != nil {
			updates["payment_transaction_time"] = t
		}
		if t := parseGatewayTime(status.SettlementTime); t != nil {
			updates["payment_settlement_time"] = t
		}
		if len(status.Raw) > 0 {
			updates["payment_raw_data"] = datatypes.JSON(status.Raw)
		}

		if next == model.StatusSettlement && payment.PaymentEnrolledAt == nil {
			if err := enrollCoursesForPayment(tx, &payment); err != nil {
				return err
			}
			now := time.Now()
			updates["payment_enrolled_at"] = &now
			payment.PaymentEnrolledAt = &now
		}

		if err := tx.Model(&payment).Updates(updates).Error; err != nil {
			return err
		}
		payment.PaymentTransactionStatus = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Payment %s → %s", payment.PaymentOrderID, payment.PaymentTransactionStatus)
	return &payment, nil
}

// enrollCoursesForPayment membuka semua course pada line item payment;
// payment lama tanpa line item jatuh ke course representatif. Order
// keranjang juga mengosongkan keranjang user.
func enrollCoursesForPayment(tx *gorm.DB, payment *model.PaymentModel) error {
	courseIDs := make([]uint, 0, len(payment.PaymentLineItems))
	for _, li := range payment.PaymentLineItems {
		courseIDs = append(courseIDs, li.PaymentLineItemCourseID)
	}
	if len(courseIDs) == 0 {
		courseIDs = append(courseIDs, payment.PaymentCourseID)
	}

	for _, cid := range courseIDs {
		if err := enrollService.UpsertUnlocked(tx, payment.PaymentUserID, cid); err != nil {
			return err
		}
		log.Printf("[INFO] User %d dibuka aksesnya ke course %d", payment.PaymentUserID, cid)
	}

	if payment.PaymentIsCartOrder {
		if err := tx.Where("cart_item_user_id = ?", payment.PaymentUserID).
			Delete(&cartModel.CartItemModel{}).Error; err != nil {
			return err
		}
		log.Printf("[INFO] Keranjang user %d dikosongkan", payment.PaymentUserID)
	}
	return nil
}
