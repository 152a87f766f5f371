package entity

import "time"

// PaymentResult is the stored record of a verified notification.
type PaymentResult struct {
	TransactionReference string    `json:"transaction_reference" bson:"transaction_reference"`
	OrderId              string    `json:"order_id" bson:"order_id"`
	MerchantId           string    `json:"merchant_id" bson:"merchant_id"`
	Amount               int64     `json:"amount" bson:"amount"`
	LocalAmount          string    `json:"local_amount" bson:"local_amount"`
	Currency             string    `json:"currency" bson:"currency"`
	ResponseCode         int       `json:"response_code" bson:"response_code"`
	Message              string    `json:"message" bson:"message"`
	TransactionDateTime  time.Time `json:"transaction_date_time" bson:"transaction_date_time"`
	KeyVersion           string    `json:"key_version" bson:"key_version"`
	Data                 string    `json:"data" bson:"data"`
	TimeReceived         time.Time `json:"time_received" bson:"time_received"`
}

// NewPaymentResult flattens a verified response for storage.
func NewPaymentResult(response *PaymentResponse, data string, received time.Time) *PaymentResult {
	result := &PaymentResult{
		LocalAmount:         response.Amount,
		ResponseCode:        int(response.ResponseCode),
		Message:             response.Message(),
		TransactionDateTime: response.TransactionDateTime,
		KeyVersion:          response.KeyVersion,
		Data:                data,
		TimeReceived:        received,
	}
	if response.HasOrder() {
		order := response.Order
		result.TransactionReference = order.TransactionReference()
		result.OrderId = order.OrderId()
		result.MerchantId = order.MerchantId()
		result.Amount = order.Amount()
		result.Currency = order.CurrencyCode()
	} else {
		result.TransactionReference, _ = response.Fields.Get("transactionReference")
		result.OrderId, _ = response.Fields.Get("orderId")
	}
	return result
}

func (r *PaymentResult) DataType() string {
	return "payment_result"
}

// PaymentRecord is the stored record of an issued payment request.
// The seal is kept, the secret key never is.
type PaymentRecord struct {
	TransactionReference string    `json:"transaction_reference" bson:"transaction_reference"`
	OrderId              string    `json:"order_id" bson:"order_id"`
	Amount               int64     `json:"amount" bson:"amount"`
	Currency             string    `json:"currency" bson:"currency"`
	TestMode             bool      `json:"test_mode" bson:"test_mode"`
	Data                 string    `json:"data" bson:"data"`
	Seal                 string    `json:"seal" bson:"seal"`
	TimeOpened           time.Time `json:"time_opened" bson:"time_opened"`
}

func (r *PaymentRecord) DataType() string {
	return "payment_record"
}
