package musoni

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway(t *testing.T, handler http.HandlerFunc) *HTTPGateway {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewHTTPGateway(GatewayConfig{
		BaseURL:  ts.URL,
		Username: "apiuser",
		Password: "apipass",
		TenantID: "default",
		APIKey:   "key123",
	})
}

func TestGatewayAttachesCredentials(t *testing.T) {
	var got *http.Request
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[]`))
	})

	_, err := gw.SearchClients(context.Background(), "Juan")
	require.NoError(t, err)

	expected := "Basic " + base64.StdEncoding.EncodeToString([]byte("apiuser:apipass"))
	assert.Equal(t, expected, got.Header.Get("Authorization"))
	assert.Equal(t, "default", got.Header.Get("X-Tenant-Identifier"))
	assert.Equal(t, "key123", got.Header.Get("X-API-Key"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "/clients", got.URL.Path)
	assert.Equal(t, "Juan", got.URL.Query().Get("search"))
}

func TestGatewaySearchParamIsConfigurable(t *testing.T) {
	var got *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[]`))
	}))
	t.Cleanup(ts.Close)

	gw := NewHTTPGateway(GatewayConfig{BaseURL: ts.URL, SearchParam: "displayName"})
	_, err := gw.SearchClients(context.Background(), "Juan")
	require.NoError(t, err)

	assert.Equal(t, "Juan", got.URL.Query().Get("displayName"))
	assert.Empty(t, got.URL.Query().Get("search"))
}

func TestGatewayNormalizesCollectionShapes(t *testing.T) {
	bare := `[{"id": 1, "displayname": "Juan Perez"}, {"id": 2, "displayName": "Ana Ruiz"}]`
	paginated := `{"totalFilteredRecords": 2, "pageItems": [{"id": 1, "displayname": "Juan Perez"}, {"id": 2, "displayName": "Ana Ruiz"}]}`

	for name, body := range map[string]string{"bare array": bare, "paginated wrapper": paginated} {
		t.Run(name, func(t *testing.T) {
			gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})
			clients, err := gw.SearchClients(context.Background(), "x")
			require.NoError(t, err)
			require.Len(t, clients, 2)
			assert.Equal(t, int64(1), clients[0].ID)
			assert.Equal(t, "Juan Perez", clients[0].Name())
			assert.Equal(t, "Ana Ruiz", clients[1].Name())
		})
	}
}

func TestGatewayGetLoanExpandsAssociations(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/loans/100", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("associations"))
		w.Write([]byte(`{"id": 100, "status": {"value": "Active"}, "transactions": [{"id": 1, "type": {"value": "Repayment", "repayment": true}, "date": [2025, 12, 3], "amount": 150}]}`))
	})

	loan, err := gw.GetLoan(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), loan.ID)
	require.Len(t, loan.Transactions, 1)
	assert.Equal(t, []int{2025, 12, 3}, loan.Transactions[0].Date)
	assert.True(t, loan.Transactions[0].Type.Repayment)
}

func TestGatewaySubmitRepaymentWireFormat(t *testing.T) {
	var path, command string
	var payload map[string]any
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		command = r.URL.Query().Get("command")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.Write([]byte(`{"officeId": 1, "clientId": 1, "loanId": 100, "resourceId": 555, "changes": {"status": "approved"}}`))
	})

	resp, err := gw.SubmitRepayment(context.Background(), 100, RepaymentCommand{
		TransactionDate:   "03 December 2025",
		TransactionAmount: json.Number("150.5"),
		DateFormat:        "dd MMMM yyyy",
		Locale:            "en",
		PaymentTypeID:     10,
		ReceiptNumber:     "REC-1",
		Note:              "Pago",
	})
	require.NoError(t, err)

	assert.Equal(t, "/loans/100/transactions", path)
	assert.Equal(t, "repayment", command)
	assert.Equal(t, "03 December 2025", payload["transactionDate"])
	// json.Number keeps the amount a bare JSON number on the wire.
	assert.Equal(t, 150.5, payload["transactionAmount"])
	assert.Equal(t, "en", payload["locale"])
	assert.Equal(t, float64(10), payload["paymentTypeId"])
	assert.Equal(t, int64(555), resp.ResourceID)
}

func TestGatewayUndoWireFormat(t *testing.T) {
	var path, command string
	var payload map[string]any
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		command = r.URL.Query().Get("command")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.Write([]byte(`{"loanId": 100, "resourceId": 555}`))
	})

	_, err := gw.UndoTransaction(context.Background(), 100, 555, UndoCommand{
		TransactionDate:   "03 December 2025",
		DateFormat:        "dd MMMM yyyy",
		Locale:            "en",
		Note:              "Reversal via Agent",
		TransactionAmount: json.Number("0"),
	})
	require.NoError(t, err)

	assert.Equal(t, "/loans/100/transactions/555", path)
	assert.Equal(t, "undo", command)
	assert.Equal(t, float64(0), payload["transactionAmount"])
	assert.Equal(t, "Reversal via Agent", payload["note"])
}

func TestGatewaySurfacesAPIError(t *testing.T) {
	gw := testGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"defaultUserMessage": "not permitted"}`))
	})

	_, err := gw.GetLoan(context.Background(), 100)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Contains(t, string(apiErr.Body), "not permitted")
}
