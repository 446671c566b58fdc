package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/lmorazan/corresponsal-backend/internal/banking"
	"github.com/lmorazan/corresponsal-backend/internal/http/respond"
	"github.com/lmorazan/corresponsal-backend/internal/middleware"
	"github.com/lmorazan/corresponsal-backend/internal/models"
	"github.com/lmorazan/corresponsal-backend/internal/models/dto"
)

// BankingHandler dispatches the protected banking routes to the proxy
// service. It owns request parsing and the error-to-status mapping;
// everything domain-shaped lives in the service.
type BankingHandler struct {
	svc *banking.Service
}

// NewBankingHandler constructs the handler.
func NewBankingHandler(svc *banking.Service) *BankingHandler {
	return &BankingHandler{svc: svc}
}

// Register attaches the banking routes to the (already authenticated) router.
func (h *BankingHandler) Register(r *mux.Router) {
	r.HandleFunc("/clients", h.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/clients/{clientId}/loans", h.handleClientLoans).Methods(http.MethodGet)
	r.HandleFunc("/loans/{id}", h.handleLoanDetail).Methods(http.MethodGet)
	r.HandleFunc("/loans/{id}/transactions", h.handleRepayment).Methods(http.MethodPost)
	r.HandleFunc("/transactions/{id}/reverse", h.handleReverse).Methods(http.MethodPost)
}

func (h *BankingHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.SearchClientsAndLoans(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeServiceError(w, r, err, "Error al buscar clientes. Por favor, intente nuevamente.")
		return
	}
	respond.Success(w, results)
}

func (h *BankingHandler) handleClientLoans(w http.ResponseWriter, r *http.Request) {
	clientID, ok := pathID(w, r, "clientId", "El ID del cliente es requerido.")
	if !ok {
		return
	}
	loans, err := h.svc.ClientLoans(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, r, err, "Error al obtener los préstamos del cliente.")
		return
	}
	respond.Success(w, loans)
}

func (h *BankingHandler) handleLoanDetail(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id", "El ID del préstamo es requerido.")
	if !ok {
		return
	}
	agent := mustAgent(r)
	loan, err := h.svc.LoanDetails(r.Context(), loanID, agent)
	if err != nil {
		writeServiceError(w, r, err, "Error al obtener los detalles del préstamo.")
		return
	}
	respond.Success(w, loan)
}

func (h *BankingHandler) handleRepayment(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id", "El ID del préstamo es requerido.")
	if !ok {
		return
	}
	var req dto.RepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "Faltan datos requeridos: ID, fecha o monto.")
		return
	}
	agent := mustAgent(r)
	receipt, err := h.svc.ProcessRepayment(r.Context(), loanID, req, agent)
	if err != nil {
		writeServiceError(w, r, err, "Error al procesar el pago. Verifique los datos e intente nuevamente.")
		return
	}
	respond.Success(w, receipt)
}

func (h *BankingHandler) handleReverse(w http.ResponseWriter, r *http.Request) {
	transactionID, ok := pathID(w, r, "id", "Faltan datos requeridos para la anulación.")
	if !ok {
		return
	}
	var req dto.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, "Faltan datos requeridos para la anulación.")
		return
	}
	result, err := h.svc.ReverseTransaction(r.Context(), req.LoanID, transactionID, req.Amount)
	if err != nil {
		writeServiceError(w, r, err, "Error al anular la transacción.")
		return
	}
	respond.Success(w, result)
}

func pathID(w http.ResponseWriter, r *http.Request, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, message)
		return 0, false
	}
	return id, true
}

func mustAgent(r *http.Request) models.Agent {
	agent, _ := middleware.AgentFrom(r.Context())
	return agent
}

// writeServiceError maps the service error taxonomy onto the HTTP
// contract: validation is the caller's fault, upstream detail is
// logged but only a generic Spanish message crosses the boundary.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, upstreamMessage string) {
	var validation *banking.ValidationError
	if errors.As(err, &validation) {
		respond.Error(w, http.StatusBadRequest, respond.CodeValidation, validation.Message)
		return
	}
	var upstream *banking.UpstreamError
	if errors.As(err, &upstream) {
		log.Error().Err(upstream.Err).
			Str("op", upstream.Op).
			Str("path", r.URL.Path).
			Str("requestId", middleware.RequestIDFrom(r.Context())).
			Msg("upstream call failed")
		respond.Error(w, http.StatusInternalServerError, respond.CodeUpstream, upstreamMessage)
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
	respond.Error(w, http.StatusInternalServerError, respond.CodeInternal, upstreamMessage)
}
