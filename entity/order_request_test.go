package entity_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnikassa/entity"
)

const orderRequestJson = `{
	"currency": "EUR",
	"amount": "12.50",
	"order_id": "order1",
	"transaction_reference": "ref1",
	"capture_day": 3,
	"language": "nl",
	"brands": ["IDEAL", "VISA"],
	"return_url": "https://shop.example.com/return",
	"expiration_date": "2026-10-17T12:00:00+02:00"
}`

func TestOrderRequest(t *testing.T) {
	var request entity.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(orderRequestJson), &request))
	require.NoError(t, request.Validate())

	order, err := request.Order()
	require.NoError(t, err)
	assert.Equal(t, "EUR", order.CurrencyCode())
	assert.Equal(t, int64(1250), order.Amount())
	assert.Equal(t, "order1", order.OrderId())
	assert.Equal(t, "ref1", order.TransactionReference())
	assert.Equal(t, 3, order.CaptureDay())
	assert.Empty(t, order.MerchantId())

	options := request.Options()
	assert.Equal(t, "https://shop.example.com/return", options.NormalReturnUrl)
	assert.Empty(t, options.AutomaticResponseUrl)
	assert.Equal(t, "nl", options.Language)
	assert.Equal(t, []string{"IDEAL", "VISA"}, options.Brands)
	assert.True(t, options.ExpirationDate.Equal(time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)))
}

func TestOrderRequest_Validate(t *testing.T) {
	valid := func() entity.OrderRequest {
		return entity.OrderRequest{
			Currency:             "EUR",
			Amount:               "1",
			OrderId:              "order1",
			TransactionReference: "ref1",
		}
	}
	base := valid()
	require.NoError(t, base.Validate())

	tests := map[string]func(r *entity.OrderRequest){
		"no currency":     func(r *entity.OrderRequest) { r.Currency = "" },
		"long currency":   func(r *entity.OrderRequest) { r.Currency = "EURO" },
		"no amount":       func(r *entity.OrderRequest) { r.Amount = "" },
		"no order id":     func(r *entity.OrderRequest) { r.OrderId = "" },
		"symbol in ref":   func(r *entity.OrderRequest) { r.TransactionReference = "ref-1" },
		"capture day":     func(r *entity.OrderRequest) { r.CaptureDay = 100 },
		"return url":      func(r *entity.OrderRequest) { r.ReturnUrl = "shop/return" },
		"language length": func(r *entity.OrderRequest) { r.Language = "dutch" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			request := valid()
			mutate(&request)
			requireValidation(t, request.Validate(), "body")
		})
	}
}

func TestOrderRequest_OrderErrors(t *testing.T) {
	request := entity.OrderRequest{
		Currency:             "XYZ",
		Amount:               "1",
		OrderId:              "order1",
		TransactionReference: "ref1",
	}
	_, err := request.Order()
	requireValidation(t, err, "currencyCode")

	request.Currency = "EUR"
	request.Amount = "ten"
	_, err = request.Order()
	requireValidation(t, err, "amount")
}
