package dto

import "github.com/shopspring/decimal"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser is the trimmed-down identity echoed back on login.
type LoginUser struct {
	Username string `json:"username"`
	Agencia  string `json:"agencia"`
	Sucursal string `json:"sucursal"`
}

// RepaymentRequest is the inbound payment payload. The amount is kept
// as a decimal so it reaches the upstream command without float drift.
type RepaymentRequest struct {
	TransactionDate   string          `json:"transactionDate"`
	TransactionAmount decimal.Decimal `json:"transactionAmount"`
	Note              string          `json:"note,omitempty"`
	ReceiptNumber     string          `json:"receiptNumber,omitempty"`
}

// ReverseRequest accompanies POST /transactions/{id}/reverse.
type ReverseRequest struct {
	LoanID int64           `json:"loanId"`
	Amount decimal.Decimal `json:"amount"`
}
