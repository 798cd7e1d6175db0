package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createOrderForPayments posts a one-line order whose total equals the given
// value and returns its id.
func createOrderForPayments(t *testing.T, app *fiber.App, total float64) int {
	t.Helper()
	fruit := seedTestFruit(t, fmt.Sprintf("fruit-%s-%.2f", t.Name(), total))
	body := fmt.Sprintf(`{"clientName": "Feira", "date": "2026-08-20",
		"items": [{"productId": %d, "unit": "box", "qty": 1, "price": %.2f}]}`, fruit.ID, total)
	status, resp := doJSON(t, app, http.MethodPost, "/api/order", body)
	require.Equal(t, http.StatusCreated, status)
	return int(resp["order_id"].(float64))
}

func TestCreatePaymentJSONContract(t *testing.T) {
	app := newTestApp(t)
	orderID := createOrderForPayments(t, app, 100)

	status, resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/orders/%d/payments", orderID),
		`{"amount": 60, "notes": "sinal"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, true, resp["success"])

	payment := resp["payment"].(map[string]any)
	assert.Equal(t, 60.0, payment["amount"])
	assert.Equal(t, 40.0, payment["balance_after"])
	assert.NotEmpty(t, payment["receipt"])

	order := resp["order"].(map[string]any)
	assert.Equal(t, 60.0, order["total_paid"])
	assert.Equal(t, 40.0, order["remaining_balance"])
	assert.Equal(t, 60.0, order["payment_percentage"])
	assert.Equal(t, "partial", order["payment_status"])

	// settle the rest
	status, resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/orders/%d/payments", orderID),
		`{"amount": 40}`)
	require.Equal(t, http.StatusCreated, status)
	order = resp["order"].(map[string]any)
	assert.Equal(t, "paid", order["payment_status"])
	assert.Equal(t, 0.0, order["remaining_balance"])
}

func TestCreatePaymentOverpaymentRejected(t *testing.T) {
	app := newTestApp(t)
	orderID := createOrderForPayments(t, app, 100)

	status, _ := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/orders/%d/payments", orderID),
		`{"amount": 100}`)
	require.Equal(t, http.StatusCreated, status)

	// a cent over the settled total is refused, keyed to the amount field
	status, resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/orders/%d/payments", orderID),
		`{"amount": 0.01}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	errs := resp["errors"].(map[string]any)
	require.Contains(t, errs, "amount")
	assert.Contains(t, errs["amount"], "remaining balance: 0.00")
}

func TestCreatePaymentValidation(t *testing.T) {
	app := newTestApp(t)
	orderID := createOrderForPayments(t, app, 100)

	for _, body := range []string{`{"amount": 0}`, `{"amount": -5}`, `{}`} {
		status, _ := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/orders/%d/payments", orderID), body)
		assert.Equal(t, http.StatusUnprocessableEntity, status, "body %s", body)
	}

	status, _ := doJSON(t, app, http.MethodPost, "/api/orders/9999/payments", `{"amount": 10}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListPaymentsView(t *testing.T) {
	app := newTestApp(t)
	orderID := createOrderForPayments(t, app, 100)
	for _, body := range []string{`{"amount": 30}`, `{"amount": 20}`} {
		status, _ := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/orders/%d/payments", orderID), body)
		require.Equal(t, http.StatusCreated, status)
	}

	status, resp := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/orders/%d/payments", orderID), "")
	require.Equal(t, http.StatusOK, status)

	order := resp["order"].(map[string]any)
	assert.Equal(t, 50.0, order["total_paid"])
	assert.Equal(t, 50.0, order["remaining_balance"])
	assert.Equal(t, "partial", order["payment_status"])

	payments := resp["payments"].([]any)
	require.Len(t, payments, 2)
	newest := payments[0].(map[string]any)
	assert.Equal(t, 20.0, newest["amount"])
}

func TestDeletePaymentReplaysChain(t *testing.T) {
	app := newTestApp(t)
	orderID := createOrderForPayments(t, app, 100)

	var paymentIDs []int
	for _, body := range []string{`{"amount": 30}`, `{"amount": 30}`, `{"amount": 40}`} {
		status, resp := doJSON(t, app, http.MethodPost,
			fmt.Sprintf("/api/orders/%d/payments", orderID), body)
		require.Equal(t, http.StatusCreated, status)
		payment := resp["payment"].(map[string]any)
		paymentIDs = append(paymentIDs, int(payment["id"].(float64)))
	}

	status, resp := doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/orders/%d/payments/%d", orderID, paymentIDs[1]), "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, resp["success"])

	status, resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/orders/%d/payments", orderID), "")
	require.Equal(t, http.StatusOK, status)
	order := resp["order"].(map[string]any)
	assert.Equal(t, 70.0, order["total_paid"])

	payments := resp["payments"].([]any)
	require.Len(t, payments, 2)
	// newest first: the 40 payment now snapshots 30 remaining, the first 70
	assert.Equal(t, 30.0, payments[0].(map[string]any)["balance_after"])
	assert.Equal(t, 70.0, payments[1].(map[string]any)["balance_after"])

	status, _ = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/orders/%d/payments/%d", orderID, paymentIDs[1]), "")
	assert.Equal(t, http.StatusNotFound, status)
}
