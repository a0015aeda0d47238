package model

import (
	"time"

	"gorm.io/datatypes"
)

/* =========================================================
   Status transaksi (mengikuti istilah gateway Midtrans)
========================================================= */

type TransactionStatus string

const (
	StatusPending    TransactionStatus = "pending"
	StatusSettlement TransactionStatus = "settlement"
	StatusCapture    TransactionStatus = "capture"
	StatusCancel     TransactionStatus = "cancel"
	StatusDeny       TransactionStatus = "deny"
	StatusExpire     TransactionStatus = "expire"
)

// IsRetryable: hanya pending/expire yang boleh di-retry.
func (s TransactionStatus) IsRetryable() bool {
	return s == StatusPending || s == StatusExpire
}

// IsDeletable: record settlement/capture adalah history yang tidak bisa dihapus.
func (s TransactionStatus) IsDeletable() bool {
	switch s {
	case StatusPending, StatusExpire, StatusCancel, StatusDeny:
		return true
	}
	return false
}

/* =========================================================
   Payment
========================================================= */

// PaymentModel: append-only per attempt. Retry tidak mengubah baris lama,
// melainkan membuat baris baru dengan order_group yang sama; baris terbaru
// dalam satu group yang dianggap otoritatif.
type PaymentModel struct {
	PaymentID      uint   `gorm:"column:payment_id;primaryKey;autoIncrement" json:"payment_id"`
	PaymentOrderID string `gorm:"column:payment_order_id;size:100;unique;not null" json:"payment_order_id"`

	// Group logis satu checkout; order id pertama dalam group.
	PaymentOrderGroup string `gorm:"column:payment_order_group;size:100;not null;index" json:"payment_order_group"`

	PaymentUserID uint `gorm:"column:payment_user_id;not null;index" json:"payment_user_id"`

	// Course representatif (item pertama pada order keranjang).
	PaymentCourseID uint `gorm:"column:payment_course_id;not null" json:"payment_course_id"`

	PaymentGrossAmount int `gorm:"column:payment_gross_amount;not null" json:"payment_gross_amount"`

	// Diisi true saat dibuat lewat checkout keranjang. Menggantikan deteksi
	// prefix "CART-" pada order id yang rapuh.
	PaymentIsCartOrder bool `gorm:"column:payment_is_cart_order;not null;default:false" json:"payment_is_cart_order"`

	PaymentType              *string           `gorm:"column:payment_type;size:50" json:"payment_type,omitempty"`
	PaymentTransactionStatus TransactionStatus `gorm:"column:payment_transaction_status;type:varchar(50);not null;default:'pending'" json:"payment_transaction_status"`
	PaymentTransactionTime   *time.Time        `gorm:"column:payment_transaction_time" json:"payment_transaction_time,omitempty"`
	PaymentSettlementTime    *time.Time        `gorm:"column:payment_settlement_time" json:"payment_settlement_time,omitempty"`

	// Kapan unlock enrollment sudah dijalankan untuk payment ini.
	// Penanda "first observation of settlement" supaya side effect tidak dobel.
	PaymentEnrolledAt *time.Time `gorm:"column:payment_enrolled_at" json:"payment_enrolled_at,omitempty"`

	PaymentSnapToken  *string    `gorm:"column:payment_snap_token;type:text" json:"payment_snap_token,omitempty"`
	PaymentExpiryTime *time.Time `gorm:"column:payment_expiry_time" json:"payment_expiry_time,omitempty"`

	// Payload mentah dari gateway (hasil notifikasi/poll terakhir) + catatan.
	PaymentRawData datatypes.JSON `gorm:"column:payment_raw_data" json:"payment_raw_data,omitempty"`

	PaymentLineItems []PaymentLineItemModel `gorm:"foreignKey:PaymentLineItemPaymentID;references:PaymentID" json:"payment_line_items,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

/* =========================================================
   Line items
========================================================= */

// PaymentLineItemModel: daftar course yang dibayar satu order. Menggantikan
// encoding daftar id sebagai string dipisah koma di payload bebas.
type PaymentLineItemModel struct {
	PaymentLineItemID        uint `gorm:"column:payment_line_item_id;primaryKey;autoIncrement" json:"payment_line_item_id"`
	PaymentLineItemPaymentID uint `gorm:"column:payment_line_item_payment_id;not null;index" json:"payment_line_item_payment_id"`
	PaymentLineItemCourseID  uint `gorm:"column:payment_line_item_course_id;not null" json:"payment_line_item_course_id"`

	PaymentLineItemCourseTitle string `gorm:"column:payment_line_item_course_title;size:200;not null" json:"payment_line_item_course_title"`
	PaymentLineItemPrice       int    `gorm:"column:payment_line_item_price;not null" json:"payment_line_item_price"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PaymentLineItemModel) TableName() string {
	return "payment_line_items"
}
