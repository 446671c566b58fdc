package models

import "github.com/lmorazan/corresponsal-backend/internal/musoni"

// Entity types discriminating search hits. The type decides which
// endpoint a follow-up action targets: clients get a loan listing,
// loans go straight to the detail view.
const (
	EntityClient = "CLIENT"
	EntityLoan   = "LOAN"
)

// SearchResult is one row of the merged client+loan search. Clients and
// loans from the two upstream lookups are exposed side by side; no
// dedup is attempted, so a client and their loan may both appear.
type SearchResult struct {
	EntityType      string         `json:"entityType"`
	ID              int64          `json:"id"`
	DisplayName     string         `json:"displayname"`
	AccountNo       string         `json:"accountNo,omitempty"`
	ExternalID      string         `json:"externalId,omitempty"`
	ClientID        int64          `json:"clientId,omitempty"`
	LoanProductName string         `json:"loanProductName,omitempty"`
	OfficeName      string         `json:"officeName,omitempty"`
	Status          *musoni.Status `json:"status,omitempty"`
}

// Receipt is the repayment command response merged with the follow-up
// transaction detail fetch. When the detail fetch fails the breakdown
// fields stay zero and only the command half is populated.
type Receipt struct {
	OfficeID   int64          `json:"officeId,omitempty"`
	ClientID   int64          `json:"clientId,omitempty"`
	LoanID     int64          `json:"loanId,omitempty"`
	ResourceID int64          `json:"resourceId"`
	Changes    map[string]any `json:"changes,omitempty"`

	TransactionID         int64                   `json:"id,omitempty"`
	Type                  *musoni.TransactionType `json:"type,omitempty"`
	Date                  []int                   `json:"date,omitempty"`
	Amount                float64                 `json:"amount"`
	PrincipalPortion      float64                 `json:"principalPortion,omitempty"`
	InterestPortion       float64                 `json:"interestPortion,omitempty"`
	FeeChargesPortion     float64                 `json:"feeChargesPortion,omitempty"`
	PenaltyChargesPortion float64                 `json:"penaltyChargesPortion,omitempty"`
	Currency              *musoni.Currency        `json:"currency,omitempty"`
	Note                  string                  `json:"note,omitempty"`
	ReceiptNumber         string                  `json:"receiptNumber,omitempty"`
}
