package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"omnikassa/config"
	"omnikassa/entity"
	"omnikassa/services"
)

// Payments builds sealed payment requests and handles the notifications the
// gateway posts back. Every call works on its own order, builder and parser.
type Payments struct {
	conf     *config.Config
	database services.Database
	logger   services.LogHandler
	metrics  *Metrics
	now      func() time.Time
}

func NewPayments(conf *config.Config) *Payments {
	return &Payments{
		conf: conf,
		now:  time.Now,
	}
}

func (p *Payments) SetDatabase(database services.Database) {
	p.database = database
}

func (p *Payments) SetMetrics(metrics *Metrics) {
	p.metrics = metrics
}

func (p *Payments) SetLogger(logger services.LogHandler) {
	p.logger = logger
	if p.conf.Merchant.IsTest() {
		p.logger.Warn("test mode: requests go to the sandbox merchant")
	} else {
		p.logger.Info(fmt.Sprintf("live mode: merchant %s", secret(p.conf.Merchant.Id)))
	}
}

// NewRequest seals a payment request for the order. Options override the
// configured return urls, language, brands and expiration.
func (p *Payments) NewRequest(ctx context.Context, order *entity.Order, options entity.RequestOptions) (*entity.PaymentRequest, error) {
	merchant := &p.conf.Merchant
	if !merchant.IsTest() {
		if err := order.SetMerchantId(merchant.Id); err != nil {
			return nil, fmt.Errorf("merchant: %w", err)
		}
	}

	builder := NewRequestBuilder(merchant, order)
	builder.now = p.now
	if err := p.applyOptions(builder, options); err != nil {
		return nil, err
	}

	request, err := builder.Build()
	if err != nil {
		p.logger.Warn(fmt.Sprintf("build request for order %s: %v", order.OrderId(), err))
		return nil, fmt.Errorf("build request: %w", err)
	}
	p.logger.Info(fmt.Sprintf("request sealed: order %s; reference %s; amount %s %s",
		order.OrderId(), secret(order.TransactionReference()), order.LocalAmount(), order.CurrencyCode()))
	p.logger.Debug(fmt.Sprintf("request data: %s", request.Data))
	if p.metrics != nil {
		p.metrics.requestSealed()
	}

	if p.database != nil {
		record := &entity.PaymentRecord{
			TransactionReference: order.TransactionReference(),
			OrderId:              order.OrderId(),
			Amount:               order.Amount(),
			Currency:             order.CurrencyCode(),
			TestMode:             order.IsTestMode(),
			Data:                 request.Data,
			Seal:                 request.Seal,
			TimeOpened:           p.now(),
		}
		if err = p.database.SavePaymentRequest(ctx, record); err != nil {
			p.logger.Error("save payment request", err)
		}
	}
	return request, nil
}

func (p *Payments) applyOptions(builder *RequestBuilder, options entity.RequestOptions) error {
	merchant := &p.conf.Merchant

	normalReturnUrl := firstNonEmpty(options.NormalReturnUrl, merchant.NormalReturnUrl)
	if err := builder.SetNormalReturnUrl(normalReturnUrl); err != nil {
		return err
	}
	automaticResponseUrl := firstNonEmpty(options.AutomaticResponseUrl, merchant.AutomaticResponseUrl)
	if err := builder.SetAutomaticResponseUrl(automaticResponseUrl); err != nil {
		return err
	}
	if language := firstNonEmpty(options.Language, merchant.Language); language != "" {
		if err := builder.SetCustomerLanguage(language); err != nil {
			return err
		}
	}
	brands := options.Brands
	if len(brands) == 0 {
		brands = merchant.Brands
	}
	if err := builder.SetPaymentMeanBrandList(brands); err != nil {
		return err
	}

	expiration := options.ExpirationDate
	if expiration.IsZero() && merchant.Expiration > 0 {
		expiration = p.now().Add(merchant.Expiration)
	}
	if !expiration.IsZero() {
		if err := builder.SetExpirationDate(expiration); err != nil {
			return err
		}
	}
	return nil
}

// Notify verifies and decodes a form encoded notification body. A payload
// with a wrong seal is rejected with *entity.IntegrityError and never stored.
func (p *Payments) Notify(ctx context.Context, body []byte) (*entity.PaymentResponse, error) {
	parser, err := ParseNotification(&p.conf.Merchant, body)
	if err != nil {
		p.countNotification(resultInvalid)
		return nil, fmt.Errorf("parse notification: %w", err)
	}

	response, err := parser.Verify()
	if err != nil {
		var integrityErr *entity.IntegrityError
		if errors.As(err, &integrityErr) {
			p.countNotification(resultRejected)
			p.logger.Warn(fmt.Sprintf("notification rejected: %v", err))
		} else {
			p.countNotification(resultInvalid)
		}
		return nil, fmt.Errorf("verify notification: %w", err)
	}
	p.countNotification(resultVerified)

	result := entity.NewPaymentResult(response, parser.Data(), p.now())
	p.logger.Info(fmt.Sprintf("notification: order %s; reference %s; code %d; %s",
		result.OrderId, secret(result.TransactionReference), result.ResponseCode, result.Message))

	if p.database != nil {
		if err = p.database.SavePaymentResult(ctx, result); err != nil {
			p.logger.Error("save payment result", err)
		}
	}
	return response, nil
}

// Return verifies the fields the customer's browser posts to the normal
// return url. The outcome is not stored, the server-to-server notification is.
func (p *Payments) Return(ctx context.Context, body []byte) (*entity.PaymentResponse, error) {
	parser, err := ParseNotification(&p.conf.Merchant, body)
	if err != nil {
		return nil, fmt.Errorf("parse return: %w", err)
	}
	response, err := parser.Verify()
	if err != nil {
		p.logger.Warn(fmt.Sprintf("[%s] return rejected: %v", GetRequestID(ctx), err))
		return nil, fmt.Errorf("verify return: %w", err)
	}
	p.logger.Debug(fmt.Sprintf("[%s] return: code %d", GetRequestID(ctx), response.ResponseCode))
	return response, nil
}

// Result returns the latest stored notification for a transaction reference.
func (p *Payments) Result(ctx context.Context, transactionReference string) (*entity.PaymentResult, error) {
	if p.database == nil {
		return nil, fmt.Errorf("payment results are not stored")
	}
	result, err := p.database.GetPaymentResult(ctx, transactionReference)
	if err != nil {
		return nil, fmt.Errorf("get payment result: %w", err)
	}
	if result == nil {
		return nil, &entity.NotFoundError{Key: "result " + transactionReference}
	}
	return result, nil
}

func (p *Payments) countNotification(result string) {
	if p.metrics != nil {
		p.metrics.notification(result)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

func secret(some string) string {
	if len(some) > 5 {
		return fmt.Sprintf("%s***", some[0:5])
	}
	if some == "" {
		return "?"
	}
	return "***"
}
