package entity

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yml
var defaultTablesYaml []byte

var defaultTables = mustLoadTables(defaultTablesYaml)

// Currency is an ISO 4217 currency with its numeric code and minor unit exponent.
type Currency struct {
	Code     string `yaml:"code"`
	Numeric  string `yaml:"numeric"`
	Decimals int32  `yaml:"decimals"`
}

// Tables holds the static lookup data of the gateway: currencies, page
// languages and payment mean brands. It is read-only after loading.
type Tables struct {
	currencies []Currency
	byCode     map[string]Currency
	byNumeric  map[string]Currency
	languages  []string
	brands     []string
}

type tablesFile struct {
	Currencies []Currency `yaml:"currencies"`
	Languages  []string   `yaml:"languages"`
	Brands     []string   `yaml:"brands"`
}

// LoadTables parses lookup tables in the layout of the embedded tables.yml.
func LoadTables(data []byte) (*Tables, error) {
	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	t := &Tables{
		currencies: file.Currencies,
		byCode:     make(map[string]Currency, len(file.Currencies)),
		byNumeric:  make(map[string]Currency, len(file.Currencies)),
		languages:  file.Languages,
		brands:     file.Brands,
	}
	for _, c := range file.Currencies {
		if c.Code == "" || c.Numeric == "" {
			return nil, fmt.Errorf("parse tables: incomplete currency %+v", c)
		}
		if _, ok := t.byCode[c.Code]; ok {
			return nil, fmt.Errorf("parse tables: duplicate currency %s", c.Code)
		}
		t.byCode[c.Code] = c
		t.byNumeric[c.Numeric] = c
	}
	return t, nil
}

func mustLoadTables(data []byte) *Tables {
	t, err := LoadTables(data)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTables returns the tables embedded in the binary.
func DefaultTables() *Tables {
	return defaultTables
}

func (t *Tables) Currency(code string) (Currency, bool) {
	c, ok := t.byCode[code]
	return c, ok
}

func (t *Tables) CurrencyByNumeric(numeric string) (Currency, bool) {
	c, ok := t.byNumeric[numeric]
	return c, ok
}

func (t *Tables) HasLanguage(language string) bool {
	return contains(t.languages, language)
}

func (t *Tables) HasBrand(brand string) bool {
	return contains(t.brands, brand)
}

// Brands returns a copy of the allowed payment mean brands in table order.
func (t *Tables) Brands() []string {
	return append([]string(nil), t.brands...)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
