package musoni

import "context"

// UpstreamGateway is the seam between the proxy service and the
// core-banking API. Two implementations exist: the real HTTP client
// and a fixture-backed gateway selected once at startup by
// USE_MOCK_API. Service code never branches on mock mode itself.
//
//go:generate mockgen -destination=../banking/mocks/mock_gateway.go -package=mocks -source=gateway.go UpstreamGateway
type UpstreamGateway interface {
	SearchClients(ctx context.Context, query string) ([]Client, error)
	SearchLoans(ctx context.Context, query string) ([]Loan, error)
	GetClient(ctx context.Context, clientID int64) (*Client, error)
	GetClientAccounts(ctx context.Context, clientID int64) (*ClientAccounts, error)
	GetLoan(ctx context.Context, loanID int64) (*Loan, error)
	SubmitRepayment(ctx context.Context, loanID int64, cmd RepaymentCommand) (*CommandResponse, error)
	GetLoanTransaction(ctx context.Context, loanID, transactionID int64) (*Transaction, error)
	UndoTransaction(ctx context.Context, loanID, transactionID int64, cmd UndoCommand) (*CommandResponse, error)
}
