package services

import (
	"context"

	"omnikassa/entity"
)

type Payments interface {
	NewRequest(ctx context.Context, order *entity.Order, options entity.RequestOptions) (*entity.PaymentRequest, error)
	Notify(ctx context.Context, body []byte) (*entity.PaymentResponse, error)
	Return(ctx context.Context, body []byte) (*entity.PaymentResponse, error)
	Result(ctx context.Context, transactionReference string) (*entity.PaymentResult, error)
}
