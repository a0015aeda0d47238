package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	"github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModel.CourseModel{},
		&enrollModel.EnrollmentModel{},
		&cartModel.CartItemModel{},
		&model.PaymentModel{},
		&model.PaymentLineItemModel{},
	))
	return db
}

func seedPendingPayment(t *testing.T, db *gorm.DB, orderID string, courseIDs []uint, cartOrder bool) *model.PaymentModel {
	t.Helper()
	total := 0
	for range courseIDs {
		total += 100000
	}
	p := model.PaymentModel{
		PaymentOrderID:           orderID,
		PaymentOrderGroup:        orderID,
		PaymentUserID:            1,
		PaymentCourseID:          courseIDs[0],
		PaymentGrossAmount:       total,
		PaymentIsCartOrder:       cartOrder,
		PaymentTransactionStatus: model.StatusPending,
	}
	require.NoError(t, db.Create(&p).Error)
	for _, cid := range courseIDs {
		require.NoError(t, db.Create(&model.PaymentLineItemModel{
			PaymentLineItemPaymentID:   p.PaymentID,
			PaymentLineItemCourseID:    cid,
			PaymentLineItemCourseTitle: "Course",
			PaymentLineItemPrice:       100000,
		}).Error)
	}
	return &p
}

func enrollmentCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&enrollModel.EnrollmentModel{}).Count(&n).Error)
	return n
}

func TestReconcileSettlementUnlocksLineItems(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)

	p, err := Reconcile(db, GatewayStatus{
		OrderID:           "ORDER-1-20-AB12CD34",
		TransactionStatus: "settlement",
		PaymentType:       "qris",
		SettlementTime:    "2026-08-30 10:00:00",
		Raw:               []byte(`{"transaction_status":"settlement"}`),
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusSettlement, p.PaymentTransactionStatus)
	require.NotNil(t, p.PaymentEnrolledAt)

	var e enrollModel.EnrollmentModel
	require.NoError(t, db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", 1, 20).First(&e).Error)
	require.True(t, e.EnrollmentUnlocked)
}

func TestReconcileCaptureAcceptEqualsSettlement(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)

	p, err := Reconcile(db, GatewayStatus{
		OrderID:           "ORDER-1-20-AB12CD34",
		TransactionStatus: "capture",
		FraudStatus:       "accept",
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusSettlement, p.PaymentTransactionStatus)
	require.EqualValues(t, 1, enrollmentCount(t, db))
}

func TestReconcileSettlementReplayIsNoOp(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)

	status := GatewayStatus{OrderID: "ORDER-1-20-AB12CD34", TransactionStatus: "settlement"}

	first, err := Reconcile(db, status)
	require.NoError(t, err)
	require.NotNil(t, first.PaymentEnrolledAt)
	firstEnrolledAt := *first.PaymentEnrolledAt

	time.Sleep(10 * time.Millisecond)

	// Notifikasi ulangan (webhook dikirim ulang, atau poll manual setelah
	// webhook): enrollment tidak digandakan, enrolled_at tidak bergeser.
	second, err := Reconcile(db, status)
	require.NoError(t, err)
	require.NotNil(t, second.PaymentEnrolledAt)
	require.True(t, second.PaymentEnrolledAt.Equal(firstEnrolledAt))
	require.EqualValues(t, 1, enrollmentCount(t, db))
}

func TestReconcileCartOrderUnlocksAllAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "CART-1-AB12CD34", []uint{20, 30}, true)
	require.NoError(t, db.Create(&cartModel.CartItemModel{CartItemUserID: 1, CartItemCourseID: 20}).Error)
	require.NoError(t, db.Create(&cartModel.CartItemModel{CartItemUserID: 1, CartItemCourseID: 30}).Error)

	_, err := Reconcile(db, GatewayStatus{
		OrderID:           "CART-1-AB12CD34",
		TransactionStatus: "settlement",
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, enrollmentCount(t, db))

	var cartCount int64
	require.NoError(t, db.Model(&cartModel.CartItemModel{}).Count(&cartCount).Error)
	require.Zero(t, cartCount)
}

func TestReconcileExpireDoesNotEnroll(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)

	p, err := Reconcile(db, GatewayStatus{
		OrderID:           "ORDER-1-20-AB12CD34",
		TransactionStatus: "expire",
	})
	require.NoError(t, err)
	require.Equal(t, model.StatusExpire, p.PaymentTransactionStatus)
	require.Nil(t, p.PaymentEnrolledAt)
	require.Zero(t, enrollmentCount(t, db))
}

func TestReconcileUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	_, err := Reconcile(db, GatewayStatus{OrderID: "ORDER-X", TransactionStatus: "settlement"})
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestParseGatewayTime(t *testing.T) {
	require.Nil(t, parseGatewayTime(""))
	require.Nil(t, parseGatewayTime("bukan-waktu"))

	got := parseGatewayTime("2026-08-30 10:00:00")
	require.NotNil(t, got)
	require.Equal(t, 10, got.Hour())

	got = parseGatewayTime("2026-08-30T10:00:00+07:00")
	require.NotNil(t, got)
}
