package musoni

import (
	"context"
	"sync"
	"time"
)

// FixtureGateway serves canned data for demo and development
// environments without a reachable core-banking system. Repayments are
// recorded in memory so that a submitted payment shows up, dated
// today, in subsequent loan detail fetches — the same round trip the
// real upstream provides.
type FixtureGateway struct {
	mu       sync.Mutex
	nextID   int64
	recorded map[int64][]Transaction
}

var _ UpstreamGateway = (*FixtureGateway)(nil)

func NewFixtureGateway() *FixtureGateway {
	return &FixtureGateway{
		nextID:   9001,
		recorded: map[int64][]Transaction{},
	}
}

var fixtureActive = Status{ID: 300, Code: "active", Value: "Active", Active: true}

func fixtureCurrency() *Currency {
	return &Currency{Code: "HNL", Name: "Lempira", DecimalPlaces: 2, DisplaySymbol: "L", NameCode: "HNL"}
}

func (f *FixtureGateway) SearchClients(ctx context.Context, query string) ([]Client, error) {
	return []Client{
		{
			ID:          1,
			AccountNo:   "000000001",
			Displayname: "Juan Perez",
			Firstname:   "Juan",
			Lastname:    "Perez",
			Status:      fixtureActive,
			Active:      true,
			OfficeName:  "Oficina Central",
		},
	}, nil
}

func (f *FixtureGateway) SearchLoans(ctx context.Context, query string) ([]Loan, error) {
	return []Loan{
		{
			ID:              101,
			AccountNo:       "LOAN-001",
			ClientID:        1,
			ClientName:      "Juan Perez",
			LoanProductName: "Personal Loan",
			Status:          fixtureActive,
			Principal:       1000,
		},
	}, nil
}

func (f *FixtureGateway) GetClient(ctx context.Context, clientID int64) (*Client, error) {
	return &Client{
		ID:          clientID,
		AccountNo:   "000000001",
		Firstname:   "Juan",
		Lastname:    "Perez",
		Displayname: "Juan Perez",
		Status:      fixtureActive,
		Active:      true,
	}, nil
}

func (f *FixtureGateway) GetClientAccounts(ctx context.Context, clientID int64) (*ClientAccounts, error) {
	return &ClientAccounts{
		LoanAccounts: []LoanAccount{
			{ID: 101, AccountNo: "LOAN-001", Status: fixtureActive, ClientID: clientID, LoanProductName: "Personal Loan", Principal: 1000},
			{ID: 102, AccountNo: "LOAN-002", Status: fixtureActive, ClientID: clientID, LoanProductName: "Business Loan", Principal: 5000},
		},
	}, nil
}

func (f *FixtureGateway) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	loan := &Loan{
		ID:              loanID,
		AccountNo:       "LOAN-001",
		Status:          fixtureActive,
		ClientID:        1,
		ClientName:      "Juan Perez",
		LoanProductID:   1,
		LoanProductName: "Personal Loan",
		Currency:        fixtureCurrency(),
		Principal:       1000,
		ApprovedPrincipal: 1000,
		NumberOfRepayments: 12,
		Summary: &LoanSummary{
			Currency:               fixtureCurrency(),
			PrincipalDisbursed:     1000,
			PrincipalPaid:          500,
			TotalExpectedRepayment: 1100,
			TotalRepayment:         500,
			TotalOutstanding:       600,
		},
		RepaymentSchedule: &RepaymentSchedule{
			Currency: fixtureCurrency(),
			Periods: []SchedulePeriod{
				{Period: 1, DueDate: []int{2023, 2, 1}, Complete: true, PrincipalDue: 500, InterestDue: 50, TotalDueForPeriod: 550, TotalPaidForPeriod: 550},
				{Period: 2, DueDate: []int{2023, 3, 1}, Complete: false, PrincipalDue: 500, InterestDue: 50, TotalDueForPeriod: 550, TotalOutstandingForPeriod: 550},
			},
		},
		Transactions: []Transaction{
			{ID: 101, Type: TransactionType{ID: 1, Code: "disbursement", Value: "Disbursement", Disbursement: true}, Date: []int{2023, 1, 1}, Amount: 1000, Currency: fixtureCurrency()},
			{ID: 102, Type: TransactionType{ID: 2, Code: "repayment", Value: "Repayment", Repayment: true}, Date: []int{2023, 2, 1}, Amount: 500, Currency: fixtureCurrency()},
		},
	}

	f.mu.Lock()
	loan.Transactions = append(loan.Transactions, f.recorded[loanID]...)
	f.mu.Unlock()
	return loan, nil
}

func (f *FixtureGateway) SubmitRepayment(ctx context.Context, loanID int64, cmd RepaymentCommand) (*CommandResponse, error) {
	amount, _ := cmd.TransactionAmount.Float64()
	now := time.Now()

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.recorded[loanID] = append(f.recorded[loanID], Transaction{
		ID:               id,
		Type:             TransactionType{ID: 2, Code: "repayment", Value: "Repayment", Repayment: true},
		Date:             []int{now.Year(), int(now.Month()), now.Day()},
		Currency:         fixtureCurrency(),
		Amount:           amount,
		PrincipalPortion: amount,
		Note:             cmd.Note,
	})
	f.mu.Unlock()

	return &CommandResponse{
		OfficeID:   1,
		ClientID:   1,
		LoanID:     loanID,
		ResourceID: id,
		Changes: map[string]any{
			"status":            "approved",
			"transactionAmount": amount,
			"receiptNumber":     cmd.ReceiptNumber,
		},
	}, nil
}

func (f *FixtureGateway) GetLoanTransaction(ctx context.Context, loanID, transactionID int64) (*Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, trx := range f.recorded[loanID] {
		if trx.ID == transactionID {
			out := trx
			return &out, nil
		}
	}
	now := time.Now()
	return &Transaction{
		ID:               transactionID,
		Type:             TransactionType{ID: 2, Code: "repayment", Value: "Repayment", Repayment: true},
		Date:             []int{now.Year(), int(now.Month()), now.Day()},
		Amount:           100,
		PrincipalPortion: 80,
		InterestPortion:  20,
		Currency:         fixtureCurrency(),
	}, nil
}

func (f *FixtureGateway) UndoTransaction(ctx context.Context, loanID, transactionID int64, cmd UndoCommand) (*CommandResponse, error) {
	f.mu.Lock()
	for i, trx := range f.recorded[loanID] {
		if trx.ID == transactionID {
			f.recorded[loanID][i].ManuallyReversed = true
		}
	}
	f.mu.Unlock()
	return &CommandResponse{
		LoanID:     loanID,
		ResourceID: transactionID,
		Changes:    map[string]any{"manuallyReversed": true},
	}, nil
}
