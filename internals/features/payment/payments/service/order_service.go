package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/configs"
	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/model"
)

var (
	ErrCourseFree        = errors.New("course ini tidak memerlukan pembayaran")
	ErrAlreadyEnrolled   = errors.New("anda sudah terdaftar di course ini")
	ErrCartEmpty         = errors.New("keranjang kosong")
	ErrNoPremiumInCart   = errors.New("tidak ada course premium di keranjang")
	ErrPaymentNotFound   = errors.New("pembayaran tidak ditemukan")
	ErrNotRetryable      = errors.New("pembayaran ini tidak bisa di-retry")
	ErrNotDeletable      = errors.New("hanya pembayaran pending/gagal yang bisa dihapus")
	ErrNotMarkableFailed = errors.New("hanya pembayaran pending/expired yang bisa ditandai gagal")
)

func newOrderSuffix() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

func expiryTime(now time.Time) time.Time {
	return now.Add(time.Duration(configs.PaymentExpireMinutes) * time.Minute)
}

/* =========================================================
   Create: order satu course
========================================================= */

type CreatedOrder struct {
	Payment   *model.PaymentModel `json:"payment"`
	SnapToken string              `json:"snap_token"`
	OrderID   string              `json:"order_id"`
	ExpiryAt  time.Time           `json:"expiry_time"`
}

// CreateSingleOrder membuat payment pending + snap token untuk satu course
// premium. Order id: ORDER-{user}-{course}-{8 hex kapital}.
func CreateSingleOrder(db *gorm.DB, userID uint, userName, userEmail string, courseID uint) (*CreatedOrder, error) {
	var course courseModel.CourseModel
	if err := db.First(&course, courseID).Error; err != nil {
		return nil, err
	}
	if !course.CourseIsPremium || course.CoursePrice <= 0 {
		return nil, ErrCourseFree
	}

	var existing enrollModel.EnrollmentModel
	err := db.Where("enrollment_user_id = ? AND enrollment_course_id = ? AND enrollment_unlocked = ?", userID, courseID, true).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyEnrolled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	orderID := fmt.Sprintf("ORDER-%d-%d-%s", userID, courseID, newOrderSuffix())
	now := time.Now()
	exp := expiryTime(now)

	payment := model.PaymentModel{
		PaymentOrderID:           orderID,
		PaymentOrderGroup:        orderID,
		PaymentUserID:            userID,
		PaymentCourseID:          courseID,
		PaymentGrossAmount:       course.CoursePrice,
		PaymentTransactionStatus: model.StatusPending,
		PaymentExpiryTime:        &exp,
		PaymentLineItems: []model.PaymentLineItemModel{{
			PaymentLineItemCourseID:    course.CourseID,
			PaymentLineItemCourseTitle: course.CourseTitle,
			PaymentLineItemPrice:       course.CoursePrice,
		}},
	}
	if err := db.Create(&payment).Error; err != nil {
		return nil, err
	}

	token, _, err := GenerateSnapToken(orderID, int64(course.CoursePrice), []SnapItem{{
		ID:    fmt.Sprintf("course-%d", course.CourseID),
		Name:  course.CourseTitle,
		Price: int64(course.CoursePrice),
	}}, userName, userEmail)
	if err != nil {
		return nil, err
	}

	payment.PaymentSnapToken = &token
	if err := db.Model(&payment).Update("payment_snap_token", token).Error; err != nil {
		return nil, err
	}

	return &CreatedOrder{Payment: &payment, SnapToken: token, OrderID: orderID, ExpiryAt: exp}, nil
}

/* =========================================================
   Create: order keranjang (satu transaksi untuk semua item)
========================================================= */

// CreateCartOrder menggabungkan semua course premium di keranjang menjadi
// satu order. Order id: CART-{user}-{8 hex kapital}; daftar course tersimpan
// sebagai line item, bukan string di payload gateway.
func CreateCartOrder(db *gorm.DB, userID uint, userName, userEmail string) (*CreatedOrder, error) {
	var items []cartModel.CartItemModel
	if err := db.Preload("CartItemCourse").
		Where("cart_item_user_id = ?", userID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	var (
		total     int
		lineItems []model.PaymentLineItemModel
		snapItems []SnapItem
		firstID   uint
	)
	for _, it := range items {
		course := it.CartItemCourse
		if course == nil || !course.CourseIsPremium {
			continue
		}
		if firstID == 0 {
			firstID = course.CourseID
		}
		total += course.CoursePrice
		lineItems = append(lineItems, model.PaymentLineItemModel{
			PaymentLineItemCourseID:    course.CourseID,
			PaymentLineItemCourseTitle: course.CourseTitle,
			PaymentLineItemPrice:       course.CoursePrice,
		})
		snapItems = append(snapItems, SnapItem{
			ID:    fmt.Sprintf("course-%d", course.CourseID),
			Name:  course.CourseTitle,
			Price: int64(course.CoursePrice),
		})
	}
	if total == 0 || firstID == 0 {
		return nil, ErrNoPremiumInCart
	}

	orderID := fmt.Sprintf("CART-%d-%s", userID, newOrderSuffix())
	now := time.Now()
	exp := expiryTime(now)

	payment := model.PaymentModel{
		PaymentOrderID:           orderID,
		PaymentOrderGroup:        orderID,
		PaymentUserID:            userID,
		PaymentCourseID:          firstID,
		PaymentGrossAmount:       total,
		PaymentIsCartOrder:       true,
		PaymentTransactionStatus: model.StatusPending,
		PaymentExpiryTime:        &exp,
		PaymentLineItems:         lineItems,
	}
	if err := db.Create(&payment).Error; err != nil {
		return nil, err
	}

	token, _, err := GenerateSnapToken(orderID, int64(total), snapItems, userName, userEmail)
	if err != nil {
		return nil, err
	}

	payment.PaymentSnapToken = &token
	if err := db.Model(&payment).Update("payment_snap_token", token).Error; err != nil {
		return nil, err
	}

	return &CreatedOrder{Payment: &payment, SnapToken: token, OrderID: orderID, ExpiryAt: exp}, nil
}

/* =========================================================
   Retry / delete / mark-failed
========================================================= */

// RetryOrder mencetak attempt BARU untuk order yang masih pending/expire:
// baris lama tidak disentuh, order id baru {lama}-RETRY-{8 hex}, order_group
// dipertahankan supaya historinya tersambung.
func RetryOrder(db *gorm.DB, userID uint, userName, userEmail, orderID string) (*CreatedOrder, error) {
	var old model.PaymentModel
	err := db.Preload("PaymentLineItems").
		Where("payment_order_id = ? AND payment_user_id = ?", orderID, userID).
		First(&old).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !old.PaymentTransactionStatus.IsRetryable() {
		return nil, ErrNotRetryable
	}

	newOrderID := fmt.Sprintf("%s-RETRY-%s", old.PaymentOrderID, strings.ToLower(newOrderSuffix()))
	now := time.Now()
	exp := expiryTime(now)

	lineItems := make([]model.PaymentLineItemModel, 0, len(old.PaymentLineItems))
	snapItems := make([]SnapItem, 0, len(old.PaymentLineItems))
	for _, li := range old.PaymentLineItems {
		lineItems = append(lineItems, model.PaymentLineItemModel{
			PaymentLineItemCourseID:    li.PaymentLineItemCourseID,
			PaymentLineItemCourseTitle: li.PaymentLineItemCourseTitle,
			PaymentLineItemPrice:       li.PaymentLineItemPrice,
		})
		snapItems = append(snapItems, SnapItem{
			ID:    fmt.Sprintf("course-%d", li.PaymentLineItemCourseID),
			Name:  li.PaymentLineItemCourseTitle,
			Price: int64(li.PaymentLineItemPrice),
		})
	}

	fresh := model.PaymentModel{
		PaymentOrderID:           newOrderID,
		PaymentOrderGroup:        old.PaymentOrderGroup,
		PaymentUserID:            old.PaymentUserID,
		PaymentCourseID:          old.PaymentCourseID,
		PaymentGrossAmount:       old.PaymentGrossAmount,
		PaymentIsCartOrder:       old.PaymentIsCartOrder,
		PaymentTransactionStatus: model.StatusPending,
		PaymentExpiryTime:        &exp,
		PaymentLineItems:         lineItems,
	}
	if err := db.Create(&fresh).Error; err != nil {
		return nil, err
	}

	token, _, err := GenerateSnapToken(newOrderID, int64(old.PaymentGrossAmount), snapItems, userName, userEmail)
	if err != nil {
		return nil, err
	}
	fresh.PaymentSnapToken = &token
	if err := db.Model(&fresh).Update("payment_snap_token", token).Error; err != nil {
		return nil, err
	}

	return &CreatedOrder{Payment: &fresh, SnapToken: token, OrderID: newOrderID, ExpiryAt: exp}, nil
}

// DeleteOrder menghapus record pembayaran yatim. Record settlement/capture
// adalah history dan ditolak.
func DeleteOrder(db *gorm.DB, userID uint, orderID string) error {
	var payment model.PaymentModel
	err := db.Where("payment_order_id = ? AND payment_user_id = ?", orderID, userID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}
	if !payment.PaymentTransactionStatus.IsDeletable() {
		return ErrNotDeletable
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_line_item_payment_id = ?", payment.PaymentID).
			Delete(&model.PaymentLineItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&payment).Error
	})
}

// MarkFailed menandai pembayaran pending/expire sebagai cancel ketika user
// menutup popup pembayaran, plus catatan di raw data.
func MarkFailed(db *gorm.DB, userID uint, orderID string) error {
	var payment model.PaymentModel
	err := db.Where("payment_order_id = ? AND payment_user_id = ?", orderID, userID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPaymentNotFound
	}
	if err != nil {
		return err
	}
	if payment.PaymentTransactionStatus != model.StatusPending &&
		payment.PaymentTransactionStatus != model.StatusExpire {
		return ErrNotMarkableFailed
	}

	note, _ := json.Marshal(map[string]any{
		"popup_closed":    true,
		"popup_closed_at": time.Now().UTC().Format(time.RFC3339),
	})
	return db.Model(&payment).Updates(map[string]any{
		"payment_transaction_status": model.StatusCancel,
		"payment_raw_data":           datatypes.JSON(note),
	}).Error
}

/* =========================================================
   History
========================================================= */

func HistoryForUser(db *gorm.DB, userID uint) ([]model.PaymentModel, error) {
	var payments []model.PaymentModel
	err := db.Preload("PaymentLineItems").
		Where("payment_user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func FindByOrderID(db *gorm.DB, userID uint, orderID string) (*model.PaymentModel, error) {
	var payment model.PaymentModel
	err := db.Preload("PaymentLineItems").
		Where("payment_order_id = ? AND payment_user_id = ?", orderID, userID).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
