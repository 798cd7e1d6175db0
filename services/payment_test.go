package services

import (
	"testing"

	"hortifruti-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddPaymentRunningBalance(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 100)

	payment, updated, err := AddPayment(db, order.ID, 60, "sinal")
	require.NoError(t, err)
	assert.Equal(t, 60.0, payment.Amount)
	assert.Equal(t, 40.0, payment.BalanceAfter)
	assert.Equal(t, "sinal", payment.Notes)
	assert.NotEmpty(t, payment.Receipt)
	assert.Equal(t, 60.0, updated.TotalPaid)
	assert.Equal(t, 40.0, updated.RemainingBalance())
	assert.Equal(t, "partial", updated.PaymentStatus())

	// paying exactly the remaining balance drives the order to "paid"
	payment, updated, err = AddPayment(db, order.ID, 40, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, payment.BalanceAfter)
	assert.Equal(t, 100.0, updated.TotalPaid)
	assert.Equal(t, 0.0, updated.RemainingBalance())
	assert.Equal(t, "paid", updated.PaymentStatus())

	// even a cent past the total is rejected and nothing is written
	_, _, err = AddPayment(db, order.ID, 0.01, "")
	var operr *OverpaymentError
	require.ErrorAs(t, err, &operr)
	assert.Equal(t, 0.0, operr.Remaining)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAddPaymentOverpaymentCarriesRemaining(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 100)
	_, _, err := AddPayment(db, order.ID, 70, "")
	require.NoError(t, err)

	_, _, err = AddPayment(db, order.ID, 31, "")
	var operr *OverpaymentError
	require.ErrorAs(t, err, &operr)
	assert.Equal(t, 30.0, operr.Remaining)
	assert.Contains(t, operr.Error(), "30.00")
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 100)

	for _, amount := range []float64{0, -5, 0.004} {
		_, _, err := AddPayment(db, order.ID, amount, "")
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "amount %v", amount)
		assert.Equal(t, "amount", verr.Field)
	}
}

func TestAddPaymentMissingOrder(t *testing.T) {
	db := setupTestDB(t)
	_, _, err := AddPayment(db, 9999, 10, "")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTotalPaidMatchesPaymentSum(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 100)
	for _, amount := range []float64{12.5, 30, 7.25} {
		_, _, err := AddPayment(db, order.ID, amount, "")
		require.NoError(t, err)
	}

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	var payments []models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&payments).Error)

	var sum float64
	for _, p := range payments {
		sum += p.Amount
	}
	assert.Equal(t, stored.TotalPaid, sum)
}

func TestPaymentChainInvariant(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 100)
	for _, amount := range []float64{30, 30, 40} {
		_, _, err := AddPayment(db, order.ID, amount, "")
		require.NoError(t, err)
	}

	var payments []models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).
		Order("created_at asc, id asc").Find(&payments).Error)

	var running float64
	for _, p := range payments {
		running += p.Amount
		assert.Equal(t, order.Total-running, p.BalanceAfter)
	}
}

func TestRemovePaymentReplaysChain(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 100)

	var created []*models.Payment
	for _, amount := range []float64{30, 30, 40} {
		p, _, err := AddPayment(db, order.ID, amount, "")
		require.NoError(t, err)
		created = append(created, p)
	}

	// drop the middle payment
	require.NoError(t, RemovePayment(db, order.ID, created[1].ID))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, 70.0, stored.TotalPaid)
	assert.Equal(t, "partial", stored.PaymentStatus())

	var remaining []models.Payment
	require.NoError(t, db.Where("order_id = ?", order.ID).
		Order("created_at asc, id asc").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, created[0].ID, remaining[0].ID)
	assert.Equal(t, 70.0, remaining[0].BalanceAfter)
	assert.Equal(t, created[2].ID, remaining[1].ID)
	assert.Equal(t, 30.0, remaining[1].BalanceAfter)

	// the freed balance can be paid again
	_, updated, err := AddPayment(db, order.ID, 30, "")
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.PaymentStatus())
}

func TestRemoveLastPayment(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 50)
	p, _, err := AddPayment(db, order.ID, 50, "")
	require.NoError(t, err)

	require.NoError(t, RemovePayment(db, order.ID, p.ID))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, 0.0, stored.TotalPaid)
	assert.Equal(t, "unpaid", stored.PaymentStatus())
}

func TestRemovePaymentMissing(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 50)

	err := RemovePayment(db, order.ID, 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// a payment id belonging to another order is also a miss
	other := seedOrder(t, db, 80)
	p, _, err := AddPayment(db, other.ID, 10, "")
	require.NoError(t, err)
	err = RemovePayment(db, order.ID, p.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListPaymentsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db, 100)
	for _, amount := range []float64{10, 20, 30} {
		_, _, err := AddPayment(db, order.ID, amount, "")
		require.NoError(t, err)
	}

	payments, stored, err := ListPayments(db, order.ID)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, 30.0, payments[0].Amount)
	assert.Equal(t, 10.0, payments[2].Amount)
	assert.Equal(t, 60.0, stored.TotalPaid)
}
