// Package banking is the domain-shaping layer between the HTTP API and
// the core-banking upstream. It translates heterogeneous upstream JSON
// into a stable contract and narrows a loan's transaction history to
// what the requesting agent did today. All financial computation stays
// upstream; the service holds no state between requests.
package banking

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/lmorazan/corresponsal-backend/internal/models"
	"github.com/lmorazan/corresponsal-backend/internal/models/dto"
	"github.com/lmorazan/corresponsal-backend/internal/musoni"
)

// The upstream requires command dates as "dd MMMM yyyy" display
// strings, always paired with literal dateFormat and locale tokens.
const (
	musoniDateLayout = "02 January 2006"
	musoniDateFormat = "dd MMMM yyyy"
	musoniLocale     = "en"

	defaultRepaymentNote = "Pago en Corresponsal"
	reversalNote         = "Reversal via Agent"
)

// Reversal amount compatibility modes. Some upstream versions mandate
// transactionAmount: 0 on the undo command, others validate it against
// the original amount; the deployed version decides.
const (
	ReversalAmountZero     = "zero"
	ReversalAmountOriginal = "original"
)

// Config tunes service behavior per deployment.
type Config struct {
	PaymentTypeID      int
	EnrichClients      bool
	ReversalAmountMode string
}

// Service exposes the five proxy operations. Construct one per process
// and share it across request handlers; it is safe for concurrent use.
type Service struct {
	gateway musoni.UpstreamGateway
	cfg     Config
	now     func() time.Time
}

func NewService(gateway musoni.UpstreamGateway, cfg Config) *Service {
	if cfg.ReversalAmountMode == "" {
		cfg.ReversalAmountMode = ReversalAmountZero
	}
	return &Service{gateway: gateway, cfg: cfg, now: time.Now}
}

// SearchClientsAndLoans looks up clients and loans matching query in
// parallel and concatenates them: clients first, then loans, both in
// upstream order. No dedup across the two collections.
func (s *Service) SearchClientsAndLoans(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationf("El parámetro de búsqueda es requerido.")
	}

	var (
		clients []musoni.Client
		loans   []musoni.Loan
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.gateway.SearchClients(gctx, query)
		return err
	})
	g.Go(func() error {
		var err error
		loans, err = s.gateway.SearchLoans(gctx, query)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, upstream("search", err)
	}

	results := make([]models.SearchResult, 0, len(clients)+len(loans))
	seen := make(map[int64]bool, len(clients))
	for _, client := range clients {
		seen[client.ID] = true
		status := client.Status
		results = append(results, models.SearchResult{
			EntityType:  models.EntityClient,
			ID:          client.ID,
			DisplayName: client.Name(),
			AccountNo:   client.AccountNo,
			ExternalID:  client.ExternalID,
			OfficeName:  client.OfficeName,
			Status:      &status,
		})
	}

	if s.cfg.EnrichClients {
		results = append(results, s.backfillClients(ctx, loans, seen)...)
	}

	for _, loan := range loans {
		status := loan.Status
		results = append(results, models.SearchResult{
			EntityType:      models.EntityLoan,
			ID:              loan.ID,
			DisplayName:     loan.ClientName,
			AccountNo:       loan.AccountNo,
			ExternalID:      loan.ExternalID,
			ClientID:        loan.ClientID,
			LoanProductName: loan.LoanProductName,
			Status:          &status,
		})
	}
	return results, nil
}

// backfillClients fetches full client records for clientIds discovered
// only via the loan search. Individual failures are swallowed; the hit
// is simply skipped. Kept as the legacy enrichment behind a flag.
func (s *Service) backfillClients(ctx context.Context, loans []musoni.Loan, seen map[int64]bool) []models.SearchResult {
	var extra []models.SearchResult
	for _, loan := range loans {
		if loan.ClientID == 0 || seen[loan.ClientID] {
			continue
		}
		seen[loan.ClientID] = true
		client, err := s.gateway.GetClient(ctx, loan.ClientID)
		if err != nil {
			log.Warn().Err(err).Int64("clientId", loan.ClientID).Msg("search enrichment fetch failed; skipping")
			continue
		}
		status := client.Status
		extra = append(extra, models.SearchResult{
			EntityType:  models.EntityClient,
			ID:          client.ID,
			DisplayName: client.Name(),
			AccountNo:   client.AccountNo,
			ExternalID:  client.ExternalID,
			OfficeName:  client.OfficeName,
			Status:      &status,
		})
	}
	return extra
}

// ClientLoans returns the client's loan accounts. Loan listing is
// best-effort for the loan-picker flow: an upstream failure yields an
// empty list, not an error.
func (s *Service) ClientLoans(ctx context.Context, clientID int64) ([]musoni.LoanAccount, error) {
	if clientID <= 0 {
		return nil, validationf("El ID del cliente es requerido.")
	}
	accounts, err := s.gateway.GetClientAccounts(ctx, clientID)
	if err != nil {
		log.Warn().Err(err).Int64("clientId", clientID).Msg("client account listing failed; returning empty list")
		return []musoni.LoanAccount{}, nil
	}
	if accounts.LoanAccounts == nil {
		return []musoni.LoanAccount{}, nil
	}
	return accounts.LoanAccounts, nil
}

// LoanDetails fetches the loan with all associations and narrows its
// transactions to those made today by the requesting agent. An agent
// sees only what they personally did during the day, never the loan's
// full history.
func (s *Service) LoanDetails(ctx context.Context, loanID int64, agent models.Agent) (*musoni.Loan, error) {
	if loanID <= 0 {
		return nil, validationf("El ID del préstamo es requerido.")
	}
	loan, err := s.gateway.GetLoan(ctx, loanID)
	if err != nil {
		return nil, upstream("loan details", err)
	}

	today := s.now()
	filtered := make([]musoni.Transaction, 0, len(loan.Transactions))
	for _, trx := range loan.Transactions {
		if !dateEquals(trx.Date, today) {
			continue
		}
		if !authoredBy(trx, agent.Username) {
			continue
		}
		filtered = append(filtered, trx)
	}
	loan.Transactions = filtered
	return loan, nil
}

// ProcessRepayment validates and translates the repayment into the
// upstream command format, then merges the command response with a
// follow-up fetch of the created transaction so the caller can render
// a receipt with the principal/interest/fee/penalty breakdown.
func (s *Service) ProcessRepayment(ctx context.Context, loanID int64, req dto.RepaymentRequest, agent models.Agent) (*models.Receipt, error) {
	if loanID <= 0 || strings.TrimSpace(req.TransactionDate) == "" || req.TransactionAmount.IsZero() {
		return nil, validationf("Faltan datos requeridos: ID, fecha o monto.")
	}
	if req.TransactionAmount.IsNegative() {
		return nil, validationf("El monto debe ser mayor que cero.")
	}
	parsed, err := time.Parse("2006-01-02", req.TransactionDate)
	if err != nil {
		return nil, validationf("La fecha de la transacción no es válida.")
	}

	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = defaultRepaymentNote
	}
	note += auditMarker(agent)

	receiptNumber := req.ReceiptNumber
	if receiptNumber == "" {
		receiptNumber = fmt.Sprintf("REC-%d", s.now().UnixMilli())
	}

	cmd := musoni.RepaymentCommand{
		TransactionDate:   parsed.Format(musoniDateLayout),
		TransactionAmount: json.Number(req.TransactionAmount.String()),
		DateFormat:        musoniDateFormat,
		Locale:            musoniLocale,
		PaymentTypeID:     s.cfg.PaymentTypeID,
		ReceiptNumber:     receiptNumber,
		Note:              note,
	}

	resp, err := s.gateway.SubmitRepayment(ctx, loanID, cmd)
	if err != nil {
		return nil, upstream("repayment", err)
	}

	receipt := &models.Receipt{
		OfficeID:      resp.OfficeID,
		ClientID:      resp.ClientID,
		LoanID:        resp.LoanID,
		ResourceID:    resp.ResourceID,
		Changes:       resp.Changes,
		Amount:        req.TransactionAmount.InexactFloat64(),
		Note:          note,
		ReceiptNumber: receiptNumber,
	}

	// The receipt enrichment is best-effort: a completed repayment is
	// never failed because the detail fetch threw.
	if resp.ResourceID != 0 {
		detail, err := s.gateway.GetLoanTransaction(ctx, loanID, resp.ResourceID)
		if err != nil {
			log.Warn().Err(err).Int64("loanId", loanID).Int64("transactionId", resp.ResourceID).
				Msg("receipt detail fetch failed; returning command response only")
			return receipt, nil
		}
		receipt.TransactionID = detail.ID
		receipt.Type = &detail.Type
		receipt.Date = detail.Date
		if detail.Amount != 0 {
			receipt.Amount = detail.Amount
		}
		receipt.PrincipalPortion = detail.PrincipalPortion
		receipt.InterestPortion = detail.InterestPortion
		receipt.FeeChargesPortion = detail.FeeChargesPortion
		receipt.PenaltyChargesPortion = detail.PenaltyChargesPortion
		receipt.Currency = detail.Currency
	}
	return receipt, nil
}

// ReverseTransaction issues the upstream undo command. The result is
// returned verbatim and nothing is marked locally: the upstream
// manuallyReversed flag is the sole source of truth, so an upstream
// rejection (already-reversed included) propagates as an error.
func (s *Service) ReverseTransaction(ctx context.Context, loanID, transactionID int64, amount decimal.Decimal) (*musoni.CommandResponse, error) {
	if loanID <= 0 || transactionID <= 0 || amount.IsZero() || amount.IsNegative() {
		return nil, validationf("Faltan datos requeridos para la anulación.")
	}

	cmdAmount := json.Number("0")
	if s.cfg.ReversalAmountMode == ReversalAmountOriginal {
		cmdAmount = json.Number(amount.String())
	}
	cmd := musoni.UndoCommand{
		TransactionDate:   s.now().Format(musoniDateLayout),
		DateFormat:        musoniDateFormat,
		Locale:            musoniLocale,
		Note:              reversalNote,
		TransactionAmount: cmdAmount,
	}

	resp, err := s.gateway.UndoTransaction(ctx, loanID, transactionID, cmd)
	if err != nil {
		return nil, upstream("reversal", err)
	}
	return resp, nil
}

// auditMarker builds the free-text attribution appended to repayment
// notes. When the upstream omits authorship fields this marker is the
// only channel by which LoanDetails can attribute the transaction, so
// the bracket syntax must stay stable.
func auditMarker(agent models.Agent) string {
	return fmt.Sprintf(" [Usuario: %s | Agencia: %s (%s) | Sucursal: %s (%s)]",
		agent.Username, agent.Agencia, agent.CodigoAgencia, agent.Sucursal, agent.CodigoSucursal)
}

// authoredBy matches a transaction to an agent via the upstream
// authorship fields, falling back to the note marker. Both the legacy
// "[Usuario: X]" form and the current "[Usuario: X | ...]" form match.
func authoredBy(trx musoni.Transaction, username string) bool {
	if username == "" {
		return false
	}
	if trx.SubmittedByUsername == username || trx.CreatedByUsername == username {
		return true
	}
	return strings.Contains(trx.Note, "[Usuario: "+username+"]") ||
		strings.Contains(trx.Note, "[Usuario: "+username+" |")
}

// dateEquals reports whether an upstream [year, month, day] triple is
// the given calendar date. Malformed triples never match, which drops
// them from the filtered view.
func dateEquals(triple []int, day time.Time) bool {
	if len(triple) < 3 {
		return false
	}
	return triple[0] == day.Year() && triple[1] == int(day.Month()) && triple[2] == day.Day()
}
