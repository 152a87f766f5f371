package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omnikassa/entity"
)

func TestFieldsEncode(t *testing.T) {
	fields := entity.Fields{
		{Key: "amount", Value: "200"},
		{Key: "currencyCode", Value: "978"},
		{Key: "orderId", Value: "1"},
	}
	assert.Equal(t, "amount=200|currencyCode=978|orderId=1", fields.Encode())
	assert.Equal(t, "", entity.Fields{}.Encode())
}

func TestFieldsGet(t *testing.T) {
	fields := entity.Fields{
		{Key: "a", Value: "1"},
		{Key: "b", Value: ""},
		{Key: "a", Value: "2"},
	}

	value, ok := fields.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	value, ok = fields.Get("b")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = fields.Get("c")
	assert.False(t, ok)

	key, missing := fields.Missing()
	assert.True(t, missing)
	assert.Equal(t, "b", key)
}

func TestParseFields(t *testing.T) {
	fields, err := entity.ParseFields("amount=200|normalReturnUrl=http://shop.nl/?a=b|empty=")
	require.NoError(t, err)
	require.Equal(t, entity.Fields{
		{Key: "amount", Value: "200"},
		{Key: "normalReturnUrl", Value: "http://shop.nl/?a=b"},
		{Key: "empty", Value: ""},
	}, fields)
}

func TestParseFields_RoundTrip(t *testing.T) {
	data := "normalReturnUrl=http://www.company.com/|keyVersion=1|amount=200|currencyCode=978"
	fields, err := entity.ParseFields(data)
	require.NoError(t, err)
	require.Equal(t, data, fields.Encode())
}

func TestParseFields_Invalid(t *testing.T) {
	_, err := entity.ParseFields("")
	var missing *entity.MissingFieldError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "Data", missing.Field)

	for _, data := range []string{"amount", "amount=1||orderId=2", "=1"} {
		_, err = entity.ParseFields(data)
		requireValidation(t, err, "Data")
	}
}
