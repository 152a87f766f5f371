package services

import (
	"context"

	"omnikassa/entity"
)

type Database interface {
	WriteLogMessage(data Data) error

	SavePaymentRequest(ctx context.Context, record *entity.PaymentRecord) error
	SavePaymentResult(ctx context.Context, result *entity.PaymentResult) error
	GetPaymentResult(ctx context.Context, transactionReference string) (*entity.PaymentResult, error)
}

type Data interface {
	DataType() string
}
