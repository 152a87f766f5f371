package entity_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"omnikassa/entity"
)

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var validationErr *entity.ValidationError
	require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %v", err)
	require.Equal(t, field, validationErr.Field)
}

func TestSetMerchantId(t *testing.T) {
	order := entity.NewOrder()

	for length := 0; length <= 20; length++ {
		id := strings.Repeat("0", length)
		err := order.SetMerchantId(id)
		if length == 15 {
			require.NoError(t, err)
			require.Equal(t, id, order.MerchantId())
			continue
		}
		requireValidation(t, err, "merchantId")
	}
}

func TestSetMerchantId_TestMode(t *testing.T) {
	order := entity.NewOrder()
	order.EnableTestMode()
	order.EnableTestMode()

	require.True(t, order.IsTestMode())
	require.Equal(t, entity.TestMerchantId, order.MerchantId())
	requireValidation(t, order.SetMerchantId("123456789012345"), "merchantId")
	require.Equal(t, entity.TestMerchantId, order.MerchantId())
}

func TestSetCurrencyCode(t *testing.T) {
	order := entity.NewOrder()

	requireValidation(t, order.SetCurrencyCode("NL"), "currencyCode")
	requireValidation(t, order.SetCurrencyCode("eur"), "currencyCode")
	requireValidation(t, order.SetCurrencyCode("NLG"), "currencyCode")
	require.Empty(t, order.CurrencyCode())

	require.NoError(t, order.SetCurrencyCode("EUR"))
	require.Equal(t, "EUR", order.CurrencyCode())
	require.Equal(t, "978", order.CurrencyId())

	require.NoError(t, order.SetCurrencyCode("AUD"))
	require.Equal(t, "036", order.CurrencyId())
}

func TestSetCurrencyId(t *testing.T) {
	order := entity.NewOrder()

	require.NoError(t, order.SetCurrencyId("392"))
	require.Equal(t, "JPY", order.CurrencyCode())

	requireValidation(t, order.SetCurrencyId("abc"), "currencyCode")
	requireValidation(t, order.SetCurrencyId("999"), "currencyCode")
	require.Equal(t, "JPY", order.CurrencyCode())
}

func TestCurrency_TestMode(t *testing.T) {
	order := entity.NewOrder()
	require.NoError(t, order.SetCurrencyCode("USD"))

	order.EnableTestMode()

	require.Equal(t, "EUR", order.CurrencyCode())
	requireValidation(t, order.SetCurrencyCode("USD"), "currencyCode")
	require.NoError(t, order.SetCurrencyCode("EUR"))
}

func TestSetLocalAmount(t *testing.T) {
	tests := []struct {
		currency string
		amount   string
		want     int64
	}{
		{"EUR", "2,0", 200},
		{"JPY", "2,0", 2},
		{"EUR", "2.5", 250},
		{"EUR", "12.345", 1234},
		{"EUR", "0", 0},
		{"USD", " 19.99 ", 1999},
		{"JPY", "1500.99", 1500},
		{"EUR", "9999999999.99", 999999999999},
		{"JPY", "999999999999", 999999999999},
	}
	for _, tt := range tests {
		t.Run(tt.currency+" "+tt.amount, func(t *testing.T) {
			order := entity.NewOrder()
			require.NoError(t, order.SetCurrencyCode(tt.currency))
			require.NoError(t, order.SetLocalAmount(tt.amount))
			require.Equal(t, tt.want, order.Amount())
		})
	}
}

func TestSetLocalAmount_Invalid(t *testing.T) {
	order := entity.NewOrder()
	requireValidation(t, order.SetLocalAmount("10"), "amount")

	require.NoError(t, order.SetCurrencyCode("EUR"))
	require.NoError(t, order.SetLocalAmount("1"))

	for _, amount := range []string{"", "abc", "-1", "10000000000", "1,000.50"} {
		requireValidation(t, order.SetLocalAmount(amount), "amount")
	}
	require.Equal(t, int64(100), order.Amount())

	require.NoError(t, order.SetCurrencyCode("JPY"))
	requireValidation(t, order.SetLocalAmount("1000000000000"), "amount")
}

func TestSetAmount(t *testing.T) {
	order := entity.NewOrder()
	require.NoError(t, order.SetAmount(entity.MaxAmount))
	requireValidation(t, order.SetAmount(entity.MaxAmount+1), "amount")
	requireValidation(t, order.SetAmount(-1), "amount")
	require.Equal(t, entity.MaxAmount, order.Amount())
}

func TestLocalAmount(t *testing.T) {
	order := entity.NewOrder()
	require.NoError(t, order.SetCurrencyCode("EUR"))
	require.NoError(t, order.SetAmount(5))
	require.Equal(t, "0.05", order.LocalAmount())

	require.NoError(t, order.SetLocalAmount("1234,5"))
	require.Equal(t, "1234.50", order.LocalAmount())

	require.NoError(t, order.SetCurrencyCode("JPY"))
	require.Equal(t, "123450", order.LocalAmount())
}

func TestIdentifiers(t *testing.T) {
	order := entity.NewOrder()

	require.NoError(t, order.SetOrderId("abc123"))
	require.NoError(t, order.SetTransactionReference(strings.Repeat("A", 32)))

	requireValidation(t, order.SetOrderId(strings.Repeat("a", 33)), "orderId")
	requireValidation(t, order.SetOrderId("order-1"), "orderId")
	requireValidation(t, order.SetOrderId(""), "orderId")
	requireValidation(t, order.SetTransactionReference("ref 1"), "transactionReference")

	require.Equal(t, "abc123", order.OrderId())
	require.Equal(t, strings.Repeat("A", 32), order.TransactionReference())
}

func TestCapture(t *testing.T) {
	order := entity.NewOrder()

	requireValidation(t, order.SetCaptureDay(0), "captureDay")
	requireValidation(t, order.SetCaptureDay(100), "captureDay")
	require.NoError(t, order.SetCaptureDay(1))
	require.NoError(t, order.SetCaptureDay(99))
	require.Equal(t, 99, order.CaptureDay())

	var notImplemented *entity.NotImplementedError
	require.ErrorAs(t, order.SetCaptureMode("AUTHOR_CAPTURE"), &notImplemented)
}

func TestOrderFields(t *testing.T) {
	order := entity.NewOrder()
	require.NoError(t, order.SetMerchantId("123456789012345"))
	require.NoError(t, order.SetCurrencyCode("EUR"))
	require.NoError(t, order.SetLocalAmount("2,0"))
	require.NoError(t, order.SetTransactionReference("ref1"))
	require.NoError(t, order.SetOrderId("order1"))

	require.Equal(t, entity.Fields{
		{Key: "amount", Value: "200"},
		{Key: "currencyCode", Value: "978"},
		{Key: "merchantId", Value: "123456789012345"},
		{Key: "transactionReference", Value: "ref1"},
		{Key: "orderId", Value: "order1"},
	}, order.Fields())

	require.NoError(t, order.SetCaptureDay(5))
	fields := order.Fields()
	require.Len(t, fields, 7)
	require.Equal(t, entity.Field{Key: "captureDay", Value: "5"}, fields[5])
	require.Equal(t, entity.Field{Key: "captureMode", Value: ""}, fields[6])
}

func TestOrderFields_Unset(t *testing.T) {
	key, missing := entity.NewOrder().Fields().Missing()
	require.True(t, missing)
	require.Equal(t, "amount", key)
}
