package service

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Midtrans Client
========================================================= */

var (
	SnapClient snap.Client
	CoreClient coreapi.Client

	serverKey string
)

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(key string, useProduction bool) {
	serverKey = key
	env := midtrans.Sandbox
	if useProduction {
		env = midtrans.Production
	}
	SnapClient.New(key, env)
	CoreClient.New(key, env)
	log.Printf("[INFO] Midtrans client siap (production=%v)", useProduction)
}

/* =========================================================
   Snap token
========================================================= */

type SnapItem struct {
	ID    string
	Name  string
	Price int64
}

// GenerateSnapToken membuat transaksi Snap untuk satu order.
// Nama item dipotong 50 karakter mengikuti batas Midtrans.
func GenerateSnapToken(orderID string, grossAmount int64, items []SnapItem, custName, custEmail string) (string, string, error) {
	if grossAmount <= 0 {
		return "", "", errors.New("gross amount tidak valid")
	}
	if orderID == "" {
		return "", "", errors.New("order id wajib diisi")
	}

	details := make([]midtrans.ItemDetails, 0, len(items))
	for _, it := range items {
		details = append(details, midtrans.ItemDetails{
			ID:       it.ID,
			Price:    it.Price,
			Qty:      1,
			Name:     truncate(it.Name, 50),
			Category: "Course",
		})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: truncate(custName, 50),
			Email: custEmail,
		},
		Items: &details,
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

// CheckTransaction menarik status terkini sebuah order dari Midtrans.
func CheckTransaction(orderID string) (*coreapi.TransactionStatusResponse, error) {
	resp, err := CoreClient.CheckTransaction(orderID)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

/* =========================================================
   Verifikasi notifikasi webhook
========================================================= */

// VerifySignature mencocokkan signature_key notifikasi:
// sha512(order_id + status_code + gross_amount + server_key).
func VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	sum := sha512.Sum512([]byte(fmt.Sprintf("%s%s%s%s", orderID, statusCode, grossAmount, serverKey)))
	return hex.EncodeToString(sum[:]) == signatureKey
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
