// Package fiat classifies currency codes as government-issued fiat.
package fiat

import "strings"

// Predicate reports whether code names a fiat currency.
type Predicate func(code string) bool

// Codes is the built-in set of ISO 4217 codes seen in exchange exports.
var Codes = map[string]bool{
	"AED": true, "ARS": true, "AUD": true, "BRL": true, "CAD": true,
	"CHF": true, "CLP": true, "CNY": true, "COP": true, "CZK": true,
	"DKK": true, "EUR": true, "GBP": true, "HKD": true, "HUF": true,
	"IDR": true, "ILS": true, "INR": true, "JPY": true, "KRW": true,
	"KZT": true, "MXN": true, "NGN": true, "NOK": true, "NZD": true,
	"PEN": true, "PHP": true, "PLN": true, "RON": true, "RUB": true,
	"SEK": true, "SGD": true, "THB": true, "TRY": true, "TWD": true,
	"UAH": true, "USD": true, "VND": true, "ZAR": true,
}

// Classifier is a fiat code set. The zero value knows no codes.
type Classifier struct {
	codes map[string]bool
}

// NewClassifier returns a classifier over the built-in codes plus extra.
func NewClassifier(extra ...string) *Classifier {
	c := &Classifier{codes: make(map[string]bool, len(Codes)+len(extra))}
	for code := range Codes {
		c.codes[code] = true
	}
	for _, code := range extra {
		c.codes[normalize(code)] = true
	}
	return c
}

func (c *Classifier) IsFiat(code string) bool {
	if c == nil {
		return false
	}
	return c.codes[normalize(code)]
}

// Predicate adapts c for consumers that take a plain function.
func (c *Classifier) Predicate() Predicate {
	return c.IsFiat
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
