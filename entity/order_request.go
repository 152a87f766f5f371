package entity

import (
	"time"

	"github.com/gookit/validate"
)

// RequestOptions overrides the configured request fields for one payment.
// Zero values keep the configured defaults.
type RequestOptions struct {
	NormalReturnUrl      string
	AutomaticResponseUrl string
	Language             string
	Brands               []string
	ExpirationDate       time.Time
}

// OrderRequest is the JSON body accepted by the request endpoint.
type OrderRequest struct {
	Currency             string    `json:"currency" validate:"required|len:3"`
	Amount               string    `json:"amount" validate:"required"`
	OrderId              string    `json:"order_id" validate:"required|alphaNum|maxLen:32"`
	TransactionReference string    `json:"transaction_reference" validate:"required|alphaNum|maxLen:32"`
	CaptureDay           int       `json:"capture_day" validate:"min:0|max:99"`
	Language             string    `json:"language" validate:"len:2"`
	Brands               []string  `json:"brands"`
	ReturnUrl            string    `json:"return_url" validate:"fullUrl"`
	ExpirationDate       time.Time `json:"expiration_date"`
}

func (r OrderRequest) Translates() map[string]string {
	return validate.MS{
		"Currency":             "currency",
		"Amount":               "amount",
		"OrderId":              "order_id",
		"TransactionReference": "transaction_reference",
		"CaptureDay":           "capture_day",
		"Language":             "language",
		"ReturnUrl":            "return_url",
	}
}

// Validate checks the shape of the body before any order setter runs.
func (r *OrderRequest) Validate() error {
	v := validate.Struct(r)
	if !v.Validate() {
		return &ValidationError{Field: "body", Reason: v.Errors.One()}
	}
	return nil
}

// Order builds an order from the body. The merchant id is set by the caller.
func (r *OrderRequest) Order() (*Order, error) {
	order := NewOrder()
	if err := order.SetCurrencyCode(r.Currency); err != nil {
		return nil, err
	}
	if err := order.SetLocalAmount(r.Amount); err != nil {
		return nil, err
	}
	if err := order.SetOrderId(r.OrderId); err != nil {
		return nil, err
	}
	if err := order.SetTransactionReference(r.TransactionReference); err != nil {
		return nil, err
	}
	if r.CaptureDay > 0 {
		if err := order.SetCaptureDay(r.CaptureDay); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (r *OrderRequest) Options() RequestOptions {
	return RequestOptions{
		NormalReturnUrl: r.ReturnUrl,
		Language:        r.Language,
		Brands:          r.Brands,
		ExpirationDate:  r.ExpirationDate,
	}
}
