package service

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/model"
)

func TestTransactionStatusRules(t *testing.T) {
	require.True(t, model.StatusPending.IsRetryable())
	require.True(t, model.StatusExpire.IsRetryable())
	require.False(t, model.StatusSettlement.IsRetryable())
	require.False(t, model.StatusCancel.IsRetryable())

	require.True(t, model.StatusPending.IsDeletable())
	require.True(t, model.StatusCancel.IsDeletable())
	require.True(t, model.StatusDeny.IsDeletable())
	require.False(t, model.StatusSettlement.IsDeletable())
	require.False(t, model.StatusCapture.IsDeletable())
}

func TestDeleteOrderRejectsSettled(t *testing.T) {
	db := newTestDB(t)
	p := seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)
	require.NoError(t, db.Model(p).
		Update("payment_transaction_status", model.StatusSettlement).Error)

	require.ErrorIs(t, DeleteOrder(db, 1, "ORDER-1-20-AB12CD34"), ErrNotDeletable)
}

func TestDeleteOrderRemovesLineItems(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)

	require.NoError(t, DeleteOrder(db, 1, "ORDER-1-20-AB12CD34"))

	var payments, lineItems int64
	require.NoError(t, db.Model(&model.PaymentModel{}).Count(&payments).Error)
	require.NoError(t, db.Model(&model.PaymentLineItemModel{}).Count(&lineItems).Error)
	require.Zero(t, payments)
	require.Zero(t, lineItems)
}

func TestDeleteOrderScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)

	require.ErrorIs(t, DeleteOrder(db, 2, "ORDER-1-20-AB12CD34"), ErrPaymentNotFound)
}

func TestMarkFailed(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)

	require.NoError(t, MarkFailed(db, 1, "ORDER-1-20-AB12CD34"))

	var p model.PaymentModel
	require.NoError(t, db.Where("payment_order_id = ?", "ORDER-1-20-AB12CD34").First(&p).Error)
	require.Equal(t, model.StatusCancel, p.PaymentTransactionStatus)

	var note map[string]any
	require.NoError(t, sonic.Unmarshal(p.PaymentRawData, &note))
	require.Equal(t, true, note["popup_closed"])

	// Sudah cancel: tidak bisa ditandai ulang.
	require.ErrorIs(t, MarkFailed(db, 1, "ORDER-1-20-AB12CD34"), ErrNotMarkableFailed)
}

func TestHistoryAndFindScopedToUser(t *testing.T) {
	db := newTestDB(t)
	seedPendingPayment(t, db, "ORDER-1-20-AB12CD34", []uint{20}, false)

	history, err := HistoryForUser(db, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].PaymentLineItems, 1)

	history, err = HistoryForUser(db, 2)
	require.NoError(t, err)
	require.Empty(t, history)

	found, err := FindByOrderID(db, 1, "ORDER-1-20-AB12CD34")
	require.NoError(t, err)
	require.Equal(t, "ORDER-1-20-AB12CD34", found.PaymentOrderID)

	_, err = FindByOrderID(db, 2, "ORDER-1-20-AB12CD34")
	require.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestVerifySignature(t *testing.T) {
	serverKey = "dummy-server-key"
	t.Cleanup(func() { serverKey = "" })

	orderID := "ORDER-1-20-AB12CD34"
	sum := sha512.Sum512([]byte(orderID + "200" + "150000.00" + serverKey))
	valid := hex.EncodeToString(sum[:])
	require.True(t, VerifySignature(orderID, "200", "150000.00", valid))
	require.False(t, VerifySignature(orderID, "200", "150000.00", "deadbeef"))
	require.False(t, VerifySignature(orderID, "201", "150000.00", valid))
}
