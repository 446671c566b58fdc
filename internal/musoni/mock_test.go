package musoni

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureGatewayRecordsRepayments(t *testing.T) {
	gw := NewFixtureGateway()
	ctx := context.Background()

	resp, err := gw.SubmitRepayment(ctx, 100, RepaymentCommand{
		TransactionAmount: json.Number("150.5"),
		Note:              "Pago [Usuario: cajero1]",
		ReceiptNumber:     "REC-1",
	})
	require.NoError(t, err)
	require.NotZero(t, resp.ResourceID)

	loan, err := gw.GetLoan(ctx, 100)
	require.NoError(t, err)

	var recorded *Transaction
	for i := range loan.Transactions {
		if loan.Transactions[i].ID == resp.ResourceID {
			recorded = &loan.Transactions[i]
		}
	}
	require.NotNil(t, recorded, "submitted repayment must appear in loan detail")

	now := time.Now()
	assert.Equal(t, []int{now.Year(), int(now.Month()), now.Day()}, recorded.Date)
	assert.Equal(t, 150.5, recorded.Amount)
	assert.Equal(t, "Pago [Usuario: cajero1]", recorded.Note)
	assert.True(t, recorded.Type.Repayment)

	// The recorded transaction is fetchable by id for the receipt.
	detail, err := gw.GetLoanTransaction(ctx, 100, resp.ResourceID)
	require.NoError(t, err)
	assert.Equal(t, 150.5, detail.Amount)
}

func TestFixtureGatewayUndoMarksReversed(t *testing.T) {
	gw := NewFixtureGateway()
	ctx := context.Background()

	resp, err := gw.SubmitRepayment(ctx, 100, RepaymentCommand{TransactionAmount: json.Number("50")})
	require.NoError(t, err)

	_, err = gw.UndoTransaction(ctx, 100, resp.ResourceID, UndoCommand{})
	require.NoError(t, err)

	detail, err := gw.GetLoanTransaction(ctx, 100, resp.ResourceID)
	require.NoError(t, err)
	assert.True(t, detail.ManuallyReversed)
}

func TestFixtureGatewaySearchFixtures(t *testing.T) {
	gw := NewFixtureGateway()
	ctx := context.Background()

	clients, err := gw.SearchClients(ctx, "Juan")
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "Juan Perez", clients[0].Name())

	loans, err := gw.SearchLoans(ctx, "Juan")
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, "Personal Loan", loans[0].LoanProductName)

	accounts, err := gw.GetClientAccounts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, accounts.LoanAccounts, 2)
}
