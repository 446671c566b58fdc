// Package musoni talks to the Musoni/Fineract-compatible core-banking
// API. The upstream is the system of record: these types mirror its
// wire shapes and the gateway never reinterprets the financial data.
package musoni

import "encoding/json"

// Status is the generic {id, code, value} enum the upstream attaches
// to clients, loans and transactions.
type Status struct {
	ID     int64  `json:"id,omitempty"`
	Code   string `json:"code,omitempty"`
	Value  string `json:"value"`
	Active bool   `json:"active,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

type Currency struct {
	Code          string `json:"code"`
	Name          string `json:"name,omitempty"`
	DecimalPlaces int    `json:"decimalPlaces,omitempty"`
	DisplaySymbol string `json:"displaySymbol,omitempty"`
	NameCode      string `json:"nameCode,omitempty"`
}

// Client as returned by GET /clients and GET /clients/{id}. Upstream
// revisions disagree on the casing of the display name field, so both
// spellings are decoded; use Name to read it.
type Client struct {
	ID              int64  `json:"id"`
	OfficeID        int64  `json:"officeId,omitempty"`
	OfficeName      string `json:"officeName,omitempty"`
	AccountNo       string `json:"accountNo,omitempty"`
	ExternalID      string `json:"externalId,omitempty"`
	Status          Status `json:"status"`
	Active          bool   `json:"active,omitempty"`
	ActivationDate  []int  `json:"activationDate,omitempty"`
	Firstname       string `json:"firstname,omitempty"`
	Lastname        string `json:"lastname,omitempty"`
	Displayname     string `json:"displayname,omitempty"`
	DisplayNameCaps string `json:"displayName,omitempty"`
	MobileNo        string `json:"mobileNo,omitempty"`
}

// Name returns whichever display name spelling the upstream populated.
func (c Client) Name() string {
	if c.Displayname != "" {
		return c.Displayname
	}
	return c.DisplayNameCaps
}

// LoanAccount is the abbreviated loan row inside the account listing
// of GET /clients/{id}/accounts. Field names vary between the listing
// ("productName") and the loan resource ("loanProductName"); both are
// passed through untouched.
type LoanAccount struct {
	ID              int64   `json:"id"`
	AccountNo       string  `json:"accountNo,omitempty"`
	ExternalID      string  `json:"externalId,omitempty"`
	Status          Status  `json:"status"`
	ClientID        int64   `json:"clientId,omitempty"`
	ProductID       int64   `json:"productId,omitempty"`
	ProductName     string  `json:"productName,omitempty"`
	LoanProductName string  `json:"loanProductName,omitempty"`
	LoanType        *Status `json:"loanType,omitempty"`
	LoanCycle       int     `json:"loanCycle,omitempty"`
	Principal       float64 `json:"principal,omitempty"`
	InArrears       bool    `json:"inArrears,omitempty"`
}

// ClientAccounts is the envelope of GET /clients/{id}/accounts.
type ClientAccounts struct {
	LoanAccounts    []LoanAccount     `json:"loanAccounts"`
	SavingsAccounts []json.RawMessage `json:"savingsAccounts,omitempty"`
}

// LoanSummary carries the financial totals computed upstream.
type LoanSummary struct {
	Currency                 *Currency `json:"currency,omitempty"`
	PrincipalDisbursed       float64   `json:"principalDisbursed,omitempty"`
	PrincipalPaid            float64   `json:"principalPaid,omitempty"`
	PrincipalOutstanding     float64   `json:"principalOutstanding,omitempty"`
	PrincipalOverdue         float64   `json:"principalOverdue,omitempty"`
	InterestCharged          float64   `json:"interestCharged,omitempty"`
	InterestPaid             float64   `json:"interestPaid,omitempty"`
	InterestOutstanding      float64   `json:"interestOutstanding,omitempty"`
	InterestOverdue          float64   `json:"interestOverdue,omitempty"`
	FeeChargesCharged        float64   `json:"feeChargesCharged,omitempty"`
	FeeChargesPaid           float64   `json:"feeChargesPaid,omitempty"`
	FeeChargesOutstanding    float64   `json:"feeChargesOutstanding,omitempty"`
	PenaltyChargesCharged    float64   `json:"penaltyChargesCharged,omitempty"`
	PenaltyChargesPaid       float64   `json:"penaltyChargesPaid,omitempty"`
	PenaltyChargesOutstanding float64  `json:"penaltyChargesOutstanding,omitempty"`
	TotalExpectedRepayment   float64   `json:"totalExpectedRepayment,omitempty"`
	TotalRepayment           float64   `json:"totalRepayment,omitempty"`
	TotalOutstanding         float64   `json:"totalOutstanding,omitempty"`
	TotalOverdue             float64   `json:"totalOverdue,omitempty"`
	OverdueSinceDate         []int     `json:"overdueSinceDate,omitempty"`
}

// SchedulePeriod is one installment of the repayment schedule, in
// chronological order. The first period with Complete == false is the
// next due installment.
type SchedulePeriod struct {
	Period                          int     `json:"period"`
	DueDate                         []int   `json:"dueDate"`
	Complete                        bool    `json:"complete"`
	DaysInPeriod                    int     `json:"daysInPeriod,omitempty"`
	PrincipalDisbursed              float64 `json:"principalDisbursed,omitempty"`
	PrincipalDue                    float64 `json:"principalDue,omitempty"`
	PrincipalPaid                   float64 `json:"principalPaid,omitempty"`
	PrincipalOutstanding            float64 `json:"principalOutstanding,omitempty"`
	PrincipalLoanBalanceOutstanding float64 `json:"principalLoanBalanceOutstanding,omitempty"`
	InterestDue                     float64 `json:"interestDue,omitempty"`
	InterestPaid                    float64 `json:"interestPaid,omitempty"`
	InterestOutstanding             float64 `json:"interestOutstanding,omitempty"`
	FeeChargesDue                   float64 `json:"feeChargesDue,omitempty"`
	FeeChargesPaid                  float64 `json:"feeChargesPaid,omitempty"`
	PenaltyChargesDue               float64 `json:"penaltyChargesDue,omitempty"`
	PenaltyChargesPaid              float64 `json:"penaltyChargesPaid,omitempty"`
	TotalDueForPeriod               float64 `json:"totalDueForPeriod,omitempty"`
	TotalPaidForPeriod              float64 `json:"totalPaidForPeriod,omitempty"`
	TotalOutstandingForPeriod       float64 `json:"totalOutstandingForPeriod,omitempty"`
	TotalOverdue                    float64 `json:"totalOverdue,omitempty"`
}

type RepaymentSchedule struct {
	Currency               *Currency        `json:"currency,omitempty"`
	LoanTermInDays         int              `json:"loanTermInDays,omitempty"`
	TotalPrincipalExpected float64          `json:"totalPrincipalExpected,omitempty"`
	TotalPrincipalPaid     float64          `json:"totalPrincipalPaid,omitempty"`
	TotalInterestCharged   float64          `json:"totalInterestCharged,omitempty"`
	TotalRepaymentExpected float64          `json:"totalRepaymentExpected,omitempty"`
	TotalRepayment         float64          `json:"totalRepayment,omitempty"`
	TotalOutstanding       float64          `json:"totalOutstanding,omitempty"`
	Periods                []SchedulePeriod `json:"periods"`
}

type TransactionType struct {
	ID                     int64  `json:"id,omitempty"`
	Code                   string `json:"code,omitempty"`
	Value                  string `json:"value"`
	Disbursement           bool   `json:"disbursement,omitempty"`
	Repayment              bool   `json:"repayment,omitempty"`
	RepaymentAtDisbursement bool  `json:"repaymentAtDisbursement,omitempty"`
	Contra                 bool   `json:"contra,omitempty"`
	WaiveInterest          bool   `json:"waiveInterest,omitempty"`
	WaiveCharges           bool   `json:"waiveCharges,omitempty"`
	WriteOff               bool   `json:"writeOff,omitempty"`
	RecoveryRepayment      bool   `json:"recoveryRepayment,omitempty"`
}

// Transaction is a loan transaction as the upstream reports it. Dates
// arrive as [year, month, day] integer triples, month 1-based.
type Transaction struct {
	ID                    int64           `json:"id"`
	OfficeID              int64           `json:"officeId,omitempty"`
	OfficeName            string          `json:"officeName,omitempty"`
	Type                  TransactionType `json:"type"`
	Date                  []int           `json:"date"`
	Currency              *Currency       `json:"currency,omitempty"`
	Amount                float64         `json:"amount"`
	PrincipalPortion      float64         `json:"principalPortion,omitempty"`
	InterestPortion       float64         `json:"interestPortion,omitempty"`
	FeeChargesPortion     float64         `json:"feeChargesPortion,omitempty"`
	PenaltyChargesPortion float64         `json:"penaltyChargesPortion,omitempty"`
	OverpaymentPortion    float64         `json:"overpaymentPortion,omitempty"`
	SubmittedOnDate       []int           `json:"submittedOnDate,omitempty"`
	SubmittedByUsername   string          `json:"submittedByUsername,omitempty"`
	CreatedByUsername     string          `json:"createdByUsername,omitempty"`
	Note                  string          `json:"note,omitempty"`
	ManuallyReversed      bool            `json:"manuallyReversed,omitempty"`
}

// Loan is the loan resource with associations=all expanded.
type Loan struct {
	ID                 int64              `json:"id"`
	AccountNo          string             `json:"accountNo,omitempty"`
	ExternalID         string             `json:"externalId,omitempty"`
	Status             Status             `json:"status"`
	ClientID           int64              `json:"clientId,omitempty"`
	ClientAccountNo    string             `json:"clientAccountNo,omitempty"`
	ClientName         string             `json:"clientName,omitempty"`
	ClientOfficeID     int64              `json:"clientOfficeId,omitempty"`
	LoanProductID      int64              `json:"loanProductId,omitempty"`
	LoanProductName    string             `json:"loanProductName,omitempty"`
	LoanOfficerID      int64              `json:"loanOfficerId,omitempty"`
	LoanOfficerName    string             `json:"loanOfficerName,omitempty"`
	Currency           *Currency          `json:"currency,omitempty"`
	Principal          float64            `json:"principal,omitempty"`
	ApprovedPrincipal  float64            `json:"approvedPrincipal,omitempty"`
	TermFrequency      int                `json:"termFrequency,omitempty"`
	NumberOfRepayments int                `json:"numberOfRepayments,omitempty"`
	RepaymentEvery     int                `json:"repaymentEvery,omitempty"`
	InArrears          bool               `json:"inArrears,omitempty"`
	Summary            *LoanSummary       `json:"summary,omitempty"`
	RepaymentSchedule  *RepaymentSchedule `json:"repaymentSchedule,omitempty"`
	Transactions       []Transaction      `json:"transactions,omitempty"`
}

// RepaymentCommand is the body of POST /loans/{id}/transactions
// ?command=repayment. The date travels as a "dd MMMM yyyy" display
// string with explicit locale and dateFormat tokens.
type RepaymentCommand struct {
	TransactionDate   string      `json:"transactionDate"`
	TransactionAmount json.Number `json:"transactionAmount"`
	DateFormat        string      `json:"dateFormat"`
	Locale            string      `json:"locale"`
	PaymentTypeID     int         `json:"paymentTypeId,omitempty"`
	ReceiptNumber     string      `json:"receiptNumber,omitempty"`
	Note              string      `json:"note,omitempty"`
}

// UndoCommand is the body of POST /loans/{id}/transactions/{trxId}
// ?command=undo. The upstream demands a full payload even for an undo;
// which transactionAmount it accepts varies per deployed version.
type UndoCommand struct {
	TransactionDate   string      `json:"transactionDate"`
	DateFormat        string      `json:"dateFormat"`
	Locale            string      `json:"locale"`
	Note              string      `json:"note,omitempty"`
	TransactionAmount json.Number `json:"transactionAmount"`
}

// CommandResponse is the generic success envelope of upstream commands.
type CommandResponse struct {
	OfficeID   int64          `json:"officeId,omitempty"`
	ClientID   int64          `json:"clientId,omitempty"`
	LoanID     int64          `json:"loanId,omitempty"`
	ResourceID int64          `json:"resourceId"`
	Changes    map[string]any `json:"changes,omitempty"`
}
