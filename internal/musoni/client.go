package musoni

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// APIError is a non-2xx answer from the upstream. The raw body is kept
// so the service layer can log the upstream's own error detail without
// exposing it to callers.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("musoni: upstream returned %d: %s", e.StatusCode, e.Body)
}

// GatewayConfig carries the transport-level credentials attached to
// every outbound call.
type GatewayConfig struct {
	BaseURL  string
	Username string
	Password string
	TenantID string
	// APIKey is optional; when set it travels in the X-API-Key header.
	APIKey string
	// SearchParam is the query parameter name for the client search,
	// "search" or "displayName" depending on the deployed upstream.
	SearchParam string
	// HTTPClient defaults to http.DefaultClient. No retry, no timeout
	// override: transport failures propagate unchanged.
	HTTPClient *http.Client
}

// HTTPGateway is the real UpstreamGateway. It is a pass-through
// decorator around an HTTP client; it performs no financial logic.
type HTTPGateway struct {
	cfg  GatewayConfig
	http *http.Client
}

var _ UpstreamGateway = (*HTTPGateway)(nil)

func NewHTTPGateway(cfg GatewayConfig) *HTTPGateway {
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.SearchParam == "" {
		cfg.SearchParam = "search"
	}
	return &HTTPGateway{cfg: cfg, http: client}
}

func (g *HTTPGateway) SearchClients(ctx context.Context, query string) ([]Client, error) {
	body, err := g.get(ctx, "/clients", url.Values{g.cfg.SearchParam: {query}})
	if err != nil {
		return nil, err
	}
	return decodeCollection[Client](body)
}

func (g *HTTPGateway) SearchLoans(ctx context.Context, query string) ([]Loan, error) {
	body, err := g.get(ctx, "/loans", url.Values{"search": {query}})
	if err != nil {
		return nil, err
	}
	return decodeCollection[Loan](body)
}

func (g *HTTPGateway) GetClient(ctx context.Context, clientID int64) (*Client, error) {
	body, err := g.get(ctx, "/clients/"+strconv.FormatInt(clientID, 10), nil)
	if err != nil {
		return nil, err
	}
	var client Client
	if err := json.Unmarshal(body, &client); err != nil {
		return nil, fmt.Errorf("musoni: decode client %d: %w", clientID, err)
	}
	return &client, nil
}

func (g *HTTPGateway) GetClientAccounts(ctx context.Context, clientID int64) (*ClientAccounts, error) {
	body, err := g.get(ctx, fmt.Sprintf("/clients/%d/accounts", clientID), nil)
	if err != nil {
		return nil, err
	}
	var accounts ClientAccounts
	if err := json.Unmarshal(body, &accounts); err != nil {
		return nil, fmt.Errorf("musoni: decode accounts for client %d: %w", clientID, err)
	}
	return &accounts, nil
}

func (g *HTTPGateway) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	body, err := g.get(ctx, "/loans/"+strconv.FormatInt(loanID, 10), url.Values{"associations": {"all"}})
	if err != nil {
		return nil, err
	}
	var loan Loan
	if err := json.Unmarshal(body, &loan); err != nil {
		return nil, fmt.Errorf("musoni: decode loan %d: %w", loanID, err)
	}
	return &loan, nil
}

func (g *HTTPGateway) SubmitRepayment(ctx context.Context, loanID int64, cmd RepaymentCommand) (*CommandResponse, error) {
	path := fmt.Sprintf("/loans/%d/transactions", loanID)
	body, err := g.post(ctx, path, url.Values{"command": {"repayment"}}, cmd)
	if err != nil {
		return nil, err
	}
	var resp CommandResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("musoni: decode repayment response: %w", err)
	}
	return &resp, nil
}

func (g *HTTPGateway) GetLoanTransaction(ctx context.Context, loanID, transactionID int64) (*Transaction, error) {
	body, err := g.get(ctx, fmt.Sprintf("/loans/%d/transactions/%d", loanID, transactionID), nil)
	if err != nil {
		return nil, err
	}
	var trx Transaction
	if err := json.Unmarshal(body, &trx); err != nil {
		return nil, fmt.Errorf("musoni: decode transaction %d: %w", transactionID, err)
	}
	return &trx, nil
}

func (g *HTTPGateway) UndoTransaction(ctx context.Context, loanID, transactionID int64, cmd UndoCommand) (*CommandResponse, error) {
	path := fmt.Sprintf("/loans/%d/transactions/%d", loanID, transactionID)
	body, err := g.post(ctx, path, url.Values{"command": {"undo"}}, cmd)
	if err != nil {
		return nil, err
	}
	var resp CommandResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("musoni: decode undo response: %w", err)
	}
	return &resp, nil
}

func (g *HTTPGateway) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return g.do(ctx, http.MethodGet, path, query, nil)
}

func (g *HTTPGateway) post(ctx context.Context, path string, query url.Values, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("musoni: encode payload: %w", err)
	}
	return g.do(ctx, http.MethodPost, path, query, encoded)
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	endpoint := g.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("musoni: build request: %w", err)
	}

	req.SetBasicAuth(g.cfg.Username, g.cfg.Password)
	req.Header.Set("X-Tenant-Identifier", g.cfg.TenantID)
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", g.cfg.APIKey)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("musoni: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("musoni: read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// decodeCollection tolerates the two list shapes the upstream emits:
// a bare JSON array and the paginated {pageItems: [...]} wrapper.
func decodeCollection[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("musoni: decode collection: %w", err)
		}
		return items, nil
	}
	var wrapper struct {
		PageItems []T `json:"pageItems"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("musoni: decode paginated collection: %w", err)
	}
	return wrapper.PageItems, nil
}
