package entity

import "time"

// PaymentResponse is the verified content of a gateway notification.
// Order is set only when the data carries the full order field set.
type PaymentResponse struct {
	Order               *Order
	ResponseCode        ResponseCode
	TransactionDateTime time.Time
	KeyVersion          string
	// Amount is the decimal amount as shown to people, e.g. "12.50".
	Amount string
	Fields Fields
}

// HasOrder reports whether the response describes a full transaction order.
func (r *PaymentResponse) HasOrder() bool {
	return r.Order != nil
}

func (r *PaymentResponse) Message() string {
	return r.ResponseCode.String()
}
