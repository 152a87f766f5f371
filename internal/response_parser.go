package internal

import (
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"omnikassa/config"
	"omnikassa/entity"
)

const transactionDateTimeLayout = "2006-01-02T15:04:05-07:00"

var (
	digitsPattern              = regexp.MustCompile(`^[0-9]+$`)
	transactionDateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[+-]\d{2}:\d{2}$`)

	// orderKeys must all be present for a response to carry an order.
	orderKeys = []string{"amount", "currencyCode", "transactionReference", "orderId"}
)

// ResponseParser checks and decodes a payment notification posted by the gateway.
type ResponseParser struct {
	merchant *config.Merchant
	data     string
	seal     string
}

// NewResponseParser takes the posted fields; Data and Seal are required.
func NewResponseParser(merchant *config.Merchant, post map[string]string) (*ResponseParser, error) {
	data := post["Data"]
	if data == "" {
		return nil, &entity.MissingFieldError{Field: "Data"}
	}
	seal := post["Seal"]
	if seal == "" {
		return nil, &entity.MissingFieldError{Field: "Seal"}
	}
	return &ResponseParser{
		merchant: merchant,
		data:     data,
		seal:     seal,
	}, nil
}

// ParseNotification reads a form encoded POST body.
func ParseNotification(merchant *config.Merchant, body []byte) (*ResponseParser, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, &entity.ValidationError{Field: "body", Reason: err.Error()}
	}
	return NewResponseParser(merchant, map[string]string{
		"Data": values.Get("Data"),
		"Seal": values.Get("Seal"),
	})
}

// Data returns the raw Data string as received. It is not trusted before Verify succeeds.
func (p *ResponseParser) Data() string {
	return p.data
}

// Verify checks the seal and only then decodes the data. A seal mismatch
// returns *entity.IntegrityError and nothing is decoded.
func (p *ResponseParser) Verify() (*entity.PaymentResponse, error) {
	encryptor := NewEncryptor(merchantSecret(p.merchant), p.merchant.SealVersion)
	if err := encryptor.Verify(p.data, p.seal); err != nil {
		return nil, err
	}
	response, err := DecodeData(p.data, p.merchant.IsTest())
	if err != nil {
		return nil, err
	}
	if _, ok := response.Fields.Get("responseCode"); !ok {
		return nil, &entity.MissingFieldError{Field: "responseCode"}
	}
	return response, nil
}

// DecodeData turns a Data string into a response. Response-only fields are
// optional here, so the Data of an outbound request decodes as well.
func DecodeData(data string, testMode bool) (*entity.PaymentResponse, error) {
	fields, err := entity.ParseFields(data)
	if err != nil {
		return nil, err
	}
	response := &entity.PaymentResponse{
		ResponseCode: entity.ResponseUnknown,
		Fields:       fields,
	}

	if value, ok := fields.Get("responseCode"); ok {
		code, err := strconv.Atoi(value)
		if err != nil {
			return nil, &entity.ValidationError{Field: "responseCode", Reason: "must be numeric"}
		}
		response.ResponseCode = entity.ResponseCode(code)
	}
	if value, ok := fields.Get("transactionDateTime"); ok {
		response.TransactionDateTime, err = ParseTransactionDateTime(value)
		if err != nil {
			return nil, err
		}
	}
	if value, ok := fields.Get("keyVersion"); ok && !testMode {
		if len(value) > maxKeyVersionLength {
			return nil, &entity.ValidationError{Field: "keyVersion", Reason: "has a maximum of 10 characters"}
		}
		response.KeyVersion = value
	}

	response.Order, err = decodeOrder(fields, testMode)
	if err != nil {
		return nil, err
	}

	if raw, ok := fields.Get("amount"); ok {
		if currency, ok := responseCurrency(response, fields); ok {
			response.Amount, err = FormatAmount(raw, currency)
			if err != nil {
				return nil, err
			}
		}
	}
	return response, nil
}

func decodeOrder(fields entity.Fields, testMode bool) (*entity.Order, error) {
	for _, key := range orderKeys {
		if _, ok := fields.Get(key); !ok {
			return nil, nil
		}
	}
	order := entity.NewOrder()
	if testMode {
		order.EnableTestMode()
	} else if merchantId, ok := fields.Get("merchantId"); ok {
		if err := order.SetMerchantId(merchantId); err != nil {
			return nil, err
		}
	}

	currencyId, _ := fields.Get("currencyCode")
	if err := order.SetCurrencyId(currencyId); err != nil {
		return nil, err
	}
	amount, _ := fields.Get("amount")
	minor, err := parseMinorAmount(amount)
	if err != nil {
		return nil, err
	}
	if err = order.SetAmount(minor); err != nil {
		return nil, err
	}
	reference, _ := fields.Get("transactionReference")
	if err = order.SetTransactionReference(reference); err != nil {
		return nil, err
	}
	orderId, _ := fields.Get("orderId")
	if err = order.SetOrderId(orderId); err != nil {
		return nil, err
	}
	if value, ok := fields.Get("captureDay"); ok {
		days, err := strconv.Atoi(value)
		if err != nil {
			return nil, &entity.ValidationError{Field: "captureDay", Reason: "must be numeric"}
		}
		if err = order.SetCaptureDay(days); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func responseCurrency(response *entity.PaymentResponse, fields entity.Fields) (entity.Currency, bool) {
	if response.HasOrder() {
		return response.Order.Currency()
	}
	numeric, ok := fields.Get("currencyCode")
	if !ok {
		return entity.Currency{}, false
	}
	return entity.DefaultTables().CurrencyByNumeric(numeric)
}

func parseMinorAmount(raw string) (int64, error) {
	if !digitsPattern.MatchString(raw) {
		return 0, &entity.ValidationError{Field: "amount", Reason: "can only contain numerics"}
	}
	minor, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &entity.ValidationError{Field: "amount", Reason: "out of range"}
	}
	return minor, nil
}

// FormatAmount turns the minor unit digits of the wire into a decimal
// amount: "1250" is "12.50" for EUR, "5" is "0.05", and JPY stays "1250".
func FormatAmount(raw string, currency entity.Currency) (string, error) {
	minor, err := parseMinorAmount(raw)
	if err != nil {
		return "", err
	}
	return decimal.New(minor, -currency.Decimals).StringFixed(currency.Decimals), nil
}

// ParseTransactionDateTime parses ISO 8601 with an explicit offset, e.g. 2026-10-16T14:03:07+02:00.
func ParseTransactionDateTime(value string) (time.Time, error) {
	if !transactionDateTimePattern.MatchString(value) {
		return time.Time{}, &entity.ValidationError{Field: "transactionDateTime", Reason: "should be in ISO 8601 format"}
	}
	t, err := time.Parse(transactionDateTimeLayout, value)
	if err != nil {
		return time.Time{}, &entity.ValidationError{Field: "transactionDateTime", Reason: err.Error()}
	}
	return t, nil
}

func merchantSecret(merchant *config.Merchant) string {
	if merchant.IsTest() {
		return testSecretKey
	}
	return merchant.Secret
}
