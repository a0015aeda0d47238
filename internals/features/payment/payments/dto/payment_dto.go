package dto

// MidtransNotification: payload webhook dari Midtrans (field yang dipakai).
type MidtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time"`
	SettlementTime    string `json:"settlement_time"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
}

type CreateTransactionResponse struct {
	SnapToken  string `json:"snap_token"`
	OrderID    string `json:"order_id"`
	ExpiryTime string `json:"expiry_time"`
}
