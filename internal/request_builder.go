package internal

import (
	"regexp"
	"strings"
	"time"

	"omnikassa/config"
	"omnikassa/entity"
)

const (
	maxUrlLength        = 512
	maxKeyVersionLength = 10

	testSecretKey  = "002020000000001_KEY1"
	testKeyVersion = "1"

	// expirationLayout is ISO 8601 with a numeric zone without colon, e.g. 2026-10-16T12:00:00+0200.
	expirationLayout = "2006-01-02T15:04:05-0700"
)

var languagePattern = regexp.MustCompile(`^[a-z]{2}$`)

// RequestBuilder composes the request fields and an order into the sealed
// form fields of a payment request. Data and Seal are recomputed on every
// call, so a change to the builder or the order is always reflected.
type RequestBuilder struct {
	merchant             *config.Merchant
	order                *entity.Order
	tables               *entity.Tables
	normalReturnUrl      string
	automaticResponseUrl string
	customerLanguage     string
	expirationDate       string
	brands               []string
	keyVersion           string
	secretKey            string
	now                  func() time.Time
}

// NewRequestBuilder prepares a request for the order. In test mode the order
// is switched to the sandbox merchant and the sandbox key is used.
func NewRequestBuilder(merchant *config.Merchant, order *entity.Order) *RequestBuilder {
	b := &RequestBuilder{
		merchant:   merchant,
		order:      order,
		tables:     entity.DefaultTables(),
		keyVersion: merchant.KeyVersion,
		secretKey:  merchant.Secret,
		now:        time.Now,
	}
	if merchant.IsTest() {
		order.EnableTestMode()
		b.secretKey = testSecretKey
		b.keyVersion = testKeyVersion
	}
	return b
}

func (b *RequestBuilder) Order() *entity.Order {
	return b.order
}

func (b *RequestBuilder) InterfaceVersion() string {
	return b.merchant.InterfaceVersion
}

// ActionUrl returns the endpoint the form fields are posted to.
func (b *RequestBuilder) ActionUrl() string {
	return b.merchant.ActionUrl()
}

// SetNormalReturnUrl sets the page the customer returns to after the payment.
func (b *RequestBuilder) SetNormalReturnUrl(url string) error {
	if err := checkUrl("normalReturnUrl", url); err != nil {
		return err
	}
	b.normalReturnUrl = url
	return nil
}

func (b *RequestBuilder) NormalReturnUrl() string {
	return b.normalReturnUrl
}

// SetAutomaticResponseUrl sets the server-to-server notification endpoint.
func (b *RequestBuilder) SetAutomaticResponseUrl(url string) error {
	if err := checkUrl("automaticResponseUrl", url); err != nil {
		return err
	}
	b.automaticResponseUrl = url
	return nil
}

func (b *RequestBuilder) AutomaticResponseUrl() string {
	return b.automaticResponseUrl
}

// SetCustomerLanguage sets the language of the payment pages from a lower-case
// ISO 639-1 code. The gateway expects it upper-cased.
func (b *RequestBuilder) SetCustomerLanguage(language string) error {
	if !languagePattern.MatchString(language) {
		return &entity.ValidationError{Field: "customerLanguage", Reason: "does not comply with ISO 639-1 alpha-2"}
	}
	if !b.tables.HasLanguage(language) {
		return &entity.ValidationError{Field: "customerLanguage", Reason: "language " + language + " is not available"}
	}
	b.customerLanguage = strings.ToUpper(language)
	return nil
}

func (b *RequestBuilder) CustomerLanguage() string {
	return b.customerLanguage
}

// AddPaymentMeanBrand appends a payment method. Duplicates are kept in order.
func (b *RequestBuilder) AddPaymentMeanBrand(brand string) error {
	if !b.tables.HasBrand(brand) {
		return &entity.ValidationError{
			Field:  "paymentMeanBrandList",
			Reason: "payment method " + brand + " is not available, options are " + strings.Join(b.tables.Brands(), ", "),
		}
	}
	b.brands = append(b.brands, brand)
	return nil
}

// SetPaymentMeanBrandList replaces the list. On error the previous list is kept.
func (b *RequestBuilder) SetPaymentMeanBrandList(brands []string) error {
	previous := b.brands
	b.brands = nil
	for _, brand := range brands {
		if err := b.AddPaymentMeanBrand(brand); err != nil {
			b.brands = previous
			return err
		}
	}
	return nil
}

func (b *RequestBuilder) PaymentMeanBrandList() []string {
	return append([]string(nil), b.brands...)
}

// SetExpirationDate sets the moment the payment expires; it must be in the future.
func (b *RequestBuilder) SetExpirationDate(expiration time.Time) error {
	if !expiration.After(b.now()) {
		return &entity.ValidationError{Field: "expirationDate", Reason: "should be in the future"}
	}
	b.expirationDate = expiration.Format(expirationLayout)
	return nil
}

func (b *RequestBuilder) ExpirationDate() string {
	return b.expirationDate
}

func (b *RequestBuilder) SetKeyVersion(version string) error {
	if b.merchant.IsTest() {
		return &entity.ValidationError{Field: "keyVersion", Reason: "cannot be set in test mode"}
	}
	if len(version) > maxKeyVersionLength {
		return &entity.ValidationError{Field: "keyVersion", Reason: "has a maximum of 10 characters"}
	}
	b.keyVersion = version
	return nil
}

func (b *RequestBuilder) KeyVersion() string {
	return b.keyVersion
}

func (b *RequestBuilder) SetSecretKey(key string) error {
	if b.merchant.IsTest() {
		return &entity.ValidationError{Field: "secretKey", Reason: "cannot be set in test mode"}
	}
	b.secretKey = key
	return nil
}

// Fields returns the request fields followed by the order fields.
func (b *RequestBuilder) Fields() (entity.Fields, error) {
	fields := entity.Fields{
		{Key: "normalReturnUrl", Value: b.normalReturnUrl},
		{Key: "automaticResponseUrl", Value: b.automaticResponseUrl},
		{Key: "keyVersion", Value: b.keyVersion},
	}
	if b.customerLanguage != "" {
		fields = append(fields, entity.Field{Key: "customerLanguage", Value: b.customerLanguage})
	}
	if b.expirationDate != "" {
		fields = append(fields, entity.Field{Key: "expirationDate", Value: b.expirationDate})
	}
	if len(b.brands) > 0 {
		fields = append(fields, entity.Field{Key: "paymentMeanBrandList", Value: strings.Join(b.brands, ",")})
	}
	fields = append(fields, b.order.Fields()...)

	if key, ok := fields.Missing(); ok {
		return nil, &entity.MissingFieldError{Field: key}
	}
	return fields, nil
}

// Encode returns the Data string.
func (b *RequestBuilder) Encode() (string, error) {
	fields, err := b.Fields()
	if err != nil {
		return "", err
	}
	return fields.Encode(), nil
}

// Seal returns the seal of the Data string.
func (b *RequestBuilder) Seal() (string, error) {
	if b.secretKey == "" {
		return "", &entity.MissingFieldError{Field: "secretKey"}
	}
	data, err := b.Encode()
	if err != nil {
		return "", err
	}
	return NewEncryptor(b.secretKey, b.merchant.SealVersion).Seal(data)
}

// Build returns the form fields of the request together with the action url.
func (b *RequestBuilder) Build() (*entity.PaymentRequest, error) {
	data, err := b.Encode()
	if err != nil {
		return nil, err
	}
	seal, err := b.Seal()
	if err != nil {
		return nil, err
	}
	return &entity.PaymentRequest{
		ActionUrl:        b.ActionUrl(),
		Data:             data,
		InterfaceVersion: b.InterfaceVersion(),
		Seal:             seal,
	}, nil
}

func checkUrl(field, url string) error {
	if strings.Contains(url, "|") {
		return &entity.ValidationError{Field: field, Reason: "cannot contain '|'"}
	}
	if len(rawUrlEncode(url)) > maxUrlLength {
		return &entity.ValidationError{Field: field, Reason: "cannot be longer than 512 characters when encoded"}
	}
	return nil
}

// rawUrlEncode percent-encodes every byte outside the RFC 3986 unreserved set.
func rawUrlEncode(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
