package banking_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmorazan/corresponsal-backend/internal/banking"
	"github.com/lmorazan/corresponsal-backend/internal/banking/mocks"
	"github.com/lmorazan/corresponsal-backend/internal/models"
	"github.com/lmorazan/corresponsal-backend/internal/models/dto"
	"github.com/lmorazan/corresponsal-backend/internal/musoni"
)

var testAgent = models.Agent{
	Username:       "cajero1",
	Role:           models.RoleAdmin,
	Agencia:        "Agencia Principal",
	Sucursal:       "Sucursal Central",
	CodigoAgencia:  "AG001",
	CodigoSucursal: "SUC001",
}

const testMarker = " [Usuario: cajero1 | Agencia: Agencia Principal (AG001) | Sucursal: Sucursal Central (SUC001)]"

func newService(t *testing.T, cfg banking.Config) (*banking.Service, *mocks.MockUpstreamGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	gateway := mocks.NewMockUpstreamGateway(ctrl)
	return banking.NewService(gateway, cfg), gateway
}

func todayTriple() []int {
	now := time.Now()
	return []int{now.Year(), int(now.Month()), now.Day()}
}

func shiftedTriple(days int) []int {
	d := time.Now().AddDate(0, 0, days)
	return []int{d.Year(), int(d.Month()), d.Day()}
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	svc, _ := newService(t, banking.Config{})

	for _, query := range []string{"", "   ", "\t"} {
		_, err := svc.SearchClientsAndLoans(context.Background(), query)

		var validation *banking.ValidationError
		require.ErrorAs(t, err, &validation, "query %q", query)
		assert.Equal(t, "El parámetro de búsqueda es requerido.", validation.Message)
	}
	// No EXPECT calls were registered: the mock controller fails the
	// test if any upstream lookup is attempted.
}

func TestSearchMergesClientsThenLoans(t *testing.T) {
	svc, gateway := newService(t, banking.Config{})

	gateway.EXPECT().SearchClients(gomock.Any(), "Juan").Return([]musoni.Client{
		{ID: 1, Displayname: "Juan Perez", AccountNo: "000000001", OfficeName: "Central", Status: musoni.Status{Value: "Active"}},
		{ID: 2, DisplayNameCaps: "Juana Mendez", AccountNo: "000000002", Status: musoni.Status{Value: "Active"}},
	}, nil)
	gateway.EXPECT().SearchLoans(gomock.Any(), "Juan").Return([]musoni.Loan{
		{ID: 101, AccountNo: "LOAN-001", ClientID: 1, ClientName: "Juan Perez", LoanProductName: "Personal Loan", Status: musoni.Status{Value: "Active"}},
	}, nil)

	results, err := svc.SearchClientsAndLoans(context.Background(), "Juan")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, models.EntityClient, results[0].EntityType)
	assert.Equal(t, "Juan Perez", results[0].DisplayName)
	assert.Equal(t, "Central", results[0].OfficeName)

	// The camel-cased upstream spelling normalizes to the same field.
	assert.Equal(t, models.EntityClient, results[1].EntityType)
	assert.Equal(t, "Juana Mendez", results[1].DisplayName)

	loan := results[2]
	assert.Equal(t, models.EntityLoan, loan.EntityType)
	assert.Equal(t, int64(101), loan.ID)
	assert.Equal(t, int64(1), loan.ClientID)
	assert.Equal(t, "Juan Perez", loan.DisplayName)
	assert.Equal(t, "Personal Loan", loan.LoanProductName)

	for _, res := range results {
		assert.Contains(t, []string{models.EntityClient, models.EntityLoan}, res.EntityType)
	}
}

func TestSearchFailsWhenEitherLookupFails(t *testing.T) {
	svc, gateway := newService(t, banking.Config{})

	gateway.EXPECT().SearchClients(gomock.Any(), "x").Return(nil, errors.New("boom"))
	gateway.EXPECT().SearchLoans(gomock.Any(), "x").Return(nil, nil).AnyTimes()

	_, err := svc.SearchClientsAndLoans(context.Background(), "x")

	var upstream *banking.UpstreamError
	require.ErrorAs(t, err, &upstream)
}

func TestSearchEnrichmentBackfillsClients(t *testing.T) {
	svc, gateway := newService(t, banking.Config{EnrichClients: true})

	gateway.EXPECT().SearchClients(gomock.Any(), "LN").Return(nil, nil)
	gateway.EXPECT().SearchLoans(gomock.Any(), "LN").Return([]musoni.Loan{
		{ID: 201, ClientID: 7, ClientName: "Maria Lopez", LoanProductName: "Business Loan"},
		{ID: 202, ClientID: 8, ClientName: "Pedro Gomez", LoanProductName: "Personal Loan"},
	}, nil)
	gateway.EXPECT().GetClient(gomock.Any(), int64(7)).Return(&musoni.Client{ID: 7, Displayname: "Maria Lopez"}, nil)
	// An individual enrichment failure is swallowed, not propagated.
	gateway.EXPECT().GetClient(gomock.Any(), int64(8)).Return(nil, errors.New("timeout"))

	results, err := svc.SearchClientsAndLoans(context.Background(), "LN")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, models.EntityClient, results[0].EntityType)
	assert.Equal(t, int64(7), results[0].ID)
	assert.Equal(t, models.EntityLoan, results[1].EntityType)
	assert.Equal(t, models.EntityLoan, results[2].EntityType)
}

func TestSearchEnrichmentDisabledByDefault(t *testing.T) {
	svc, gateway := newService(t, banking.Config{})

	gateway.EXPECT().SearchClients(gomock.Any(), "LN").Return(nil, nil)
	gateway.EXPECT().SearchLoans(gomock.Any(), "LN").Return([]musoni.Loan{
		{ID: 201, ClientID: 7, ClientName: "Maria Lopez"},
	}, nil)

	results, err := svc.SearchClientsAndLoans(context.Background(), "LN")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.EntityLoan, results[0].EntityType)
}

func TestClientLoansRequiresID(t *testing.T) {
	svc, _ := newService(t, banking.Config{})

	_, err := svc.ClientLoans(context.Background(), 0)

	var validation *banking.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestClientLoansBestEffortOnUpstreamFailure(t *testing.T) {
	svc, gateway := newService(t, banking.Config{})

	gateway.EXPECT().GetClientAccounts(gomock.Any(), int64(1)).Return(nil, errors.New("503"))

	loans, err := svc.ClientLoans(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, loans)
}

func TestClientLoansReturnsLoanAccounts(t *testing.T) {
	svc, gateway := newService(t, banking.Config{})

	gateway.EXPECT().GetClientAccounts(gomock.Any(), int64(1)).Return(&musoni.ClientAccounts{
		LoanAccounts: []musoni.LoanAccount{{ID: 101, AccountNo: "LOAN-001"}, {ID: 102}},
	}, nil)

	loans, err := svc.ClientLoans(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, "LOAN-001", loans[0].AccountNo)
}

func TestLoanDetailsFiltersToTodayAndAgent(t *testing.T) {
	svc, gateway := newService(t, banking.Config{})

	gateway.EXPECT().GetLoan(gomock.Any(), int64(100)).Return(&musoni.Loan{
		ID: 100,
		Transactions: []musoni.Transaction{
			{ID: 1, Date: todayTriple(), SubmittedByUsername: "cajero1"},
			{ID: 2, Date: todayTriple(), CreatedByUsername: "cajero1"},
			{ID: 3, Date: todayTriple(), Note: "Pago [Usuario: cajero1]"},
			{ID: 4, Date: todayTriple(), Note: "Pago" + testMarker},
			{ID: 5, Date: todayTriple(), SubmittedByUsername: "otro"},
			{ID: 6, Date: shiftedTriple(-1), SubmittedByUsername: "cajero1"},
			{ID: 7, Date: shiftedTriple(1), SubmittedByUsername: "cajero1"},
			{ID: 8, Date: nil, SubmittedByUsername: "cajero1"},
			{ID: 9, Date: []int{2025}, SubmittedByUsername: "cajero1"},
			{ID: 10, Date: todayTriple(), Note: "[Usuario: cajero12]"},
		},
	}, nil)

	loan, err := svc.LoanDetails(context.Background(), 100, testAgent)
	require.NoError(t, err)

	var ids []int64
	for _, trx := range loan.Transactions {
		ids = append(ids, trx.ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
}

func TestLoanDetailsPropagatesUpstreamError(t *testing.T) {
	svc, gateway := newService(t, banking.Config{})

	gateway.EXPECT().GetLoan(gomock.Any(), int64(100)).Return(nil, errors.New("404"))

	_, err := svc.LoanDetails(context.Background(), 100, testAgent)

	var upstream *banking.UpstreamError
	require.ErrorAs(t, err, &upstream)
}

func TestProcessRepaymentValidatesInput(t *testing.T) {
	svc, _ := newService(t, banking.Config{})

	cases := []struct {
		name   string
		loanID int64
		req    dto.RepaymentRequest
	}{
		{"missing loan id", 0, dto.RepaymentRequest{TransactionDate: "2025-12-03", TransactionAmount: decimal.NewFromInt(150)}},
		{"missing date", 100, dto.RepaymentRequest{TransactionAmount: decimal.NewFromInt(150)}},
		{"zero amount", 100, dto.RepaymentRequest{TransactionDate: "2025-12-03"}},
		{"negative amount", 100, dto.RepaymentRequest{TransactionDate: "2025-12-03", TransactionAmount: decimal.NewFromInt(-5)}},
		{"garbage date", 100, dto.RepaymentRequest{TransactionDate: "03/12/2025", TransactionAmount: decimal.NewFromInt(150)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ProcessRepayment(context.Background(), tc.loanID, tc.req, testAgent)
			var validation *banking.ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestProcessRepaymentTranslatesCommand(t *testing.T) {
	svc, gateway := newService(t, banking.Config{PaymentTypeID: 10})

	var captured musoni.RepaymentCommand
	gateway.EXPECT().SubmitRepayment(gomock.Any(), int64(100), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, cmd musoni.RepaymentCommand) (*musoni.CommandResponse, error) {
			captured = cmd
			return &musoni.CommandResponse{OfficeID: 1, ClientID: 1, LoanID: 100, ResourceID: 555}, nil
		})
	gateway.EXPECT().GetLoanTransaction(gomock.Any(), int64(100), int64(555)).
		Return(&musoni.Transaction{ID: 555, Amount: 150, PrincipalPortion: 120, InterestPortion: 30, Date: todayTriple()}, nil)

	receipt, err := svc.ProcessRepayment(context.Background(), 100, dto.RepaymentRequest{
		TransactionDate:   "2025-12-03",
		TransactionAmount: decimal.NewFromInt(150),
	}, testAgent)
	require.NoError(t, err)

	assert.Equal(t, "03 December 2025", captured.TransactionDate)
	assert.Equal(t, "dd MMMM yyyy", captured.DateFormat)
	assert.Equal(t, "en", captured.Locale)
	assert.Equal(t, 10, captured.PaymentTypeID)
	assert.Equal(t, "150", captured.TransactionAmount.String())
	assert.True(t, strings.HasPrefix(captured.ReceiptNumber, "REC-"), "synthesized receipt number, got %q", captured.ReceiptNumber)
	assert.Equal(t, "Pago en Corresponsal"+testMarker, captured.Note)

	assert.Equal(t, int64(555), receipt.ResourceID)
	assert.Equal(t, 150.0, receipt.Amount)
	assert.Equal(t, 120.0, receipt.PrincipalPortion)
	assert.Equal(t, 30.0, receipt.InterestPortion)
}

func TestProcessRepaymentAppendsMarkerToSuppliedNote(t *testing.T) {
	svc, gateway := newService(t, banking.Config{PaymentTypeID: 10})

	var captured musoni.RepaymentCommand
	gateway.EXPECT().SubmitRepayment(gomock.Any(), int64(100), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, cmd musoni.RepaymentCommand) (*musoni.CommandResponse, error) {
			captured = cmd
			return &musoni.CommandResponse{ResourceID: 556}, nil
		})
	gateway.EXPECT().GetLoanTransaction(gomock.Any(), int64(100), int64(556)).
		Return(&musoni.Transaction{ID: 556}, nil)

	_, err := svc.ProcessRepayment(context.Background(), 100, dto.RepaymentRequest{
		TransactionDate:   "2025-12-03",
		TransactionAmount: decimal.RequireFromString("150.50"),
		Note:              "Abono quincenal",
		ReceiptNumber:     "R-42",
	}, testAgent)
	require.NoError(t, err)

	assert.Equal(t, "Abono quincenal"+testMarker, captured.Note)
	assert.Equal(t, "R-42", captured.ReceiptNumber)
	assert.Equal(t, "150.5", captured.TransactionAmount.String())
}

func TestProcessRepaymentSurvivesReceiptFetchFailure(t *testing.T) {
	svc, gateway := newService(t, banking.Config{PaymentTypeID: 10})

	gateway.EXPECT().SubmitRepayment(gomock.Any(), int64(100), gomock.Any()).
		Return(&musoni.CommandResponse{OfficeID: 1, LoanID: 100, ResourceID: 777}, nil)
	gateway.EXPECT().GetLoanTransaction(gomock.Any(), int64(100), int64(777)).
		Return(nil, errors.New("timeout"))

	receipt, err := svc.ProcessRepayment(context.Background(), 100, dto.RepaymentRequest{
		TransactionDate:   "2025-12-03",
		TransactionAmount: decimal.NewFromInt(150),
	}, testAgent)
	require.NoError(t, err)

	assert.Equal(t, int64(777), receipt.ResourceID)
	assert.Equal(t, 150.0, receipt.Amount)
	assert.Zero(t, receipt.PrincipalPortion)
	assert.Nil(t, receipt.Type)
}

func TestProcessRepaymentPropagatesCommandRejection(t *testing.T) {
	svc, gateway := newService(t, banking.Config{PaymentTypeID: 10})

	gateway.EXPECT().SubmitRepayment(gomock.Any(), int64(100), gomock.Any()).
		Return(nil, errors.New("validation.msg.loan.transaction.amount.invalid"))

	_, err := svc.ProcessRepayment(context.Background(), 100, dto.RepaymentRequest{
		TransactionDate:   "2025-12-03",
		TransactionAmount: decimal.NewFromInt(150),
	}, testAgent)

	var upstream *banking.UpstreamError
	require.ErrorAs(t, err, &upstream)
}

func TestReverseTransactionValidatesInput(t *testing.T) {
	svc, _ := newService(t, banking.Config{})

	cases := []struct {
		loanID, trxID int64
		amount        decimal.Decimal
	}{
		{0, 5, decimal.NewFromInt(10)},
		{1, 0, decimal.NewFromInt(10)},
		{1, 5, decimal.Zero},
		{1, 5, decimal.NewFromInt(-10)},
	}
	for i, tc := range cases {
		_, err := svc.ReverseTransaction(context.Background(), tc.loanID, tc.trxID, tc.amount)
		var validation *banking.ValidationError
		require.ErrorAs(t, err, &validation, "case %d", i)
	}
}

func TestReverseTransactionBuildsUndoPayload(t *testing.T) {
	svc, gateway := newService(t, banking.Config{ReversalAmountMode: banking.ReversalAmountZero})

	var captured musoni.UndoCommand
	gateway.EXPECT().UndoTransaction(gomock.Any(), int64(100), int64(555), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, cmd musoni.UndoCommand) (*musoni.CommandResponse, error) {
			captured = cmd
			return &musoni.CommandResponse{LoanID: 100, ResourceID: 555}, nil
		})

	result, err := svc.ReverseTransaction(context.Background(), 100, 555, decimal.NewFromInt(150))
	require.NoError(t, err)

	assert.Equal(t, "0", captured.TransactionAmount.String())
	assert.Equal(t, "Reversal via Agent", captured.Note)
	assert.Equal(t, "dd MMMM yyyy", captured.DateFormat)
	assert.Equal(t, "en", captured.Locale)
	assert.Regexp(t, regexp.MustCompile(`^\d{2} [A-Z][a-z]+ \d{4}$`), captured.TransactionDate)
	assert.Equal(t, int64(555), result.ResourceID)
}

func TestReverseTransactionOriginalAmountMode(t *testing.T) {
	svc, gateway := newService(t, banking.Config{ReversalAmountMode: banking.ReversalAmountOriginal})

	gateway.EXPECT().UndoTransaction(gomock.Any(), int64(100), int64(555), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, cmd musoni.UndoCommand) (*musoni.CommandResponse, error) {
			assert.Equal(t, "150.5", cmd.TransactionAmount.String())
			return &musoni.CommandResponse{ResourceID: 555}, nil
		})

	_, err := svc.ReverseTransaction(context.Background(), 100, 555, decimal.RequireFromString("150.50"))
	require.NoError(t, err)
}

func TestReverseTransactionPropagatesRejection(t *testing.T) {
	svc, gateway := newService(t, banking.Config{})

	// An already-reversed transaction is rejected upstream; the proxy
	// must surface that, never synthesize a success.
	gateway.EXPECT().UndoTransaction(gomock.Any(), int64(100), int64(555), gomock.Any()).
		Return(nil, fmt.Errorf("error.msg.loan.transaction.update.not.allowed"))

	_, err := svc.ReverseTransaction(context.Background(), 100, 555, decimal.NewFromInt(150))

	var upstream *banking.UpstreamError
	require.ErrorAs(t, err, &upstream)
}
