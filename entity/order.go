package entity

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// TestMerchantId is the sandbox merchant used in test mode.
	TestMerchantId = "002020000000001"
	// TestCurrency is the only currency of the sandbox merchant.
	TestCurrency = "EUR"
	// MaxAmount is the largest amount in minor units the gateway accepts.
	MaxAmount int64 = 999999999999

	merchantIdLength = 15
	maxIdLength      = 32
)

var (
	currencyPattern     = regexp.MustCompile(`^[A-Z]{3}$`)
	alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// Order holds the transaction identifying and monetary fields of a payment.
// The amount is always kept in minor currency units.
// The zero value is an empty order using the embedded tables.
type Order struct {
	tables               *Tables
	merchantId           string
	currencyCode         string
	amount               int64
	amountSet            bool
	orderId              string
	transactionReference string
	captureDay           int
	captureMode          string
	testMode             bool
}

func NewOrder() *Order {
	return &Order{tables: DefaultTables()}
}

// NewOrderWithTables creates an order validated against the given lookup tables.
func NewOrderWithTables(tables *Tables) *Order {
	return &Order{tables: tables}
}

func (o *Order) lookup() *Tables {
	if o.tables == nil {
		return DefaultTables()
	}
	return o.tables
}

// SetMerchantId sets the 15 character merchant id. It fails in test mode.
func (o *Order) SetMerchantId(id string) error {
	if o.testMode {
		return invalid("merchantId", "cannot be set in test mode")
	}
	if len(id) != merchantIdLength {
		return invalid("merchantId", "should contain %d characters, got %d", merchantIdLength, len(id))
	}
	o.merchantId = id
	return nil
}

func (o *Order) MerchantId() string {
	return o.merchantId
}

// SetCurrencyCode sets the ISO 4217 alpha-3 currency.
func (o *Order) SetCurrencyCode(code string) error {
	if !currencyPattern.MatchString(code) {
		return invalid("currencyCode", "%q does not comply with ISO 4217", code)
	}
	if _, ok := o.lookup().Currency(code); !ok {
		return invalid("currencyCode", "currency %q is not available", code)
	}
	if o.testMode && code != TestCurrency {
		return invalid("currencyCode", "only %s is available in test mode", TestCurrency)
	}
	o.currencyCode = code
	return nil
}

// SetCurrencyId sets the currency from its ISO 4217 numeric code.
func (o *Order) SetCurrencyId(numeric string) error {
	if _, err := strconv.Atoi(numeric); err != nil {
		return invalid("currencyCode", "numeric code %q must be an integer", numeric)
	}
	currency, ok := o.lookup().CurrencyByNumeric(numeric)
	if !ok {
		return invalid("currencyCode", "currency with id %q is not available", numeric)
	}
	return o.SetCurrencyCode(currency.Code)
}

func (o *Order) CurrencyCode() string {
	return o.currencyCode
}

// CurrencyId returns the numeric ISO 4217 code of the currency, empty if unset.
func (o *Order) CurrencyId() string {
	currency, ok := o.Currency()
	if !ok {
		return ""
	}
	return currency.Numeric
}

func (o *Order) Currency() (Currency, bool) {
	if o.currencyCode == "" {
		return Currency{}, false
	}
	return o.lookup().Currency(o.currencyCode)
}

// SetLocalAmount converts a decimal string ("2.50" or "2,50") to minor units.
// Digits beyond the currency's minor unit are truncated. A currency must be set first.
func (o *Order) SetLocalAmount(amount string) error {
	currency, ok := o.Currency()
	if !ok {
		return invalid("amount", "set a currency first")
	}
	normalized := strings.ReplaceAll(strings.TrimSpace(amount), ",", ".")
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return invalid("amount", "%q is not a decimal number", amount)
	}
	if value.IsNegative() {
		return invalid("amount", "cannot be negative")
	}
	minor := value.Shift(currency.Decimals).Truncate(0)
	if minor.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return invalid("amount", "cannot be over %s %s", decimal.New(MaxAmount, -currency.Decimals).StringFixed(currency.Decimals), currency.Code)
	}
	o.amount = minor.IntPart()
	o.amountSet = true
	return nil
}

// SetAmount sets the amount already expressed in minor units.
func (o *Order) SetAmount(minor int64) error {
	if minor < 0 {
		return invalid("amount", "cannot be negative")
	}
	if minor > MaxAmount {
		return invalid("amount", "cannot be over %d minor units", MaxAmount)
	}
	o.amount = minor
	o.amountSet = true
	return nil
}

// Amount returns the amount in minor units.
func (o *Order) Amount() int64 {
	return o.amount
}

// LocalAmount formats the amount as a decimal string of the order currency.
func (o *Order) LocalAmount() string {
	currency, ok := o.Currency()
	if !ok {
		return strconv.FormatInt(o.amount, 10)
	}
	return decimal.New(o.amount, -currency.Decimals).StringFixed(currency.Decimals)
}

func (o *Order) SetOrderId(orderId string) error {
	if err := checkIdentifier("orderId", orderId); err != nil {
		return err
	}
	o.orderId = orderId
	return nil
}

func (o *Order) OrderId() string {
	return o.orderId
}

func (o *Order) SetTransactionReference(reference string) error {
	if err := checkIdentifier("transactionReference", reference); err != nil {
		return err
	}
	o.transactionReference = reference
	return nil
}

func (o *Order) TransactionReference() string {
	return o.transactionReference
}

// SetCaptureDay sets the number of days after authorization in which a card
// transaction is captured.
func (o *Order) SetCaptureDay(days int) error {
	if days < 1 || days > 99 {
		return invalid("captureDay", "should be between 1 and 99, got %d", days)
	}
	o.captureDay = days
	return nil
}

func (o *Order) CaptureDay() int {
	return o.captureDay
}

func (o *Order) SetCaptureMode(string) error {
	return &NotImplementedError{Feature: "captureMode"}
}

func (o *Order) CaptureMode() string {
	return o.captureMode
}

// EnableTestMode switches the order to the sandbox merchant. Calling it again has no effect.
func (o *Order) EnableTestMode() {
	if o.testMode {
		return
	}
	o.merchantId = TestMerchantId
	o.currencyCode = TestCurrency
	o.testMode = true
}

func (o *Order) IsTestMode() bool {
	return o.testMode
}

// Fields returns the order part of the Data string. Unset values are left
// empty so that encoding reports them as missing.
func (o *Order) Fields() Fields {
	amount := ""
	if o.amountSet {
		amount = strconv.FormatInt(o.amount, 10)
	}
	fields := Fields{
		{Key: "amount", Value: amount},
		{Key: "currencyCode", Value: o.CurrencyId()},
		{Key: "merchantId", Value: o.merchantId},
		{Key: "transactionReference", Value: o.transactionReference},
		{Key: "orderId", Value: o.orderId},
	}
	if o.captureDay > 0 {
		fields = append(fields,
			Field{Key: "captureDay", Value: strconv.Itoa(o.captureDay)},
			Field{Key: "captureMode", Value: o.captureMode},
		)
	}
	return fields
}

func checkIdentifier(field, value string) error {
	if len(value) > maxIdLength {
		return invalid(field, "has a maximum of %d characters", maxIdLength)
	}
	if !alphanumericPattern.MatchString(value) {
		return invalid(field, "can only contain alphanumeric characters")
	}
	return nil
}
